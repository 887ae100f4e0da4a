package quizsession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/quizdeck/quizdeck/internal/domain/questionbank"
	"github.com/quizdeck/quizdeck/internal/id"
	"github.com/quizdeck/quizdeck/internal/progress"
	"github.com/quizdeck/quizdeck/internal/scoring"
)

// State is where the session is in its lifecycle. Idle is both the
// initial state and the state ReturnToMenu re-enters from anywhere.
type State int

const (
	StateIdle State = iota
	StateInProgress
	StateSectionComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateSectionComplete:
		return "section-complete"
	}
	return "unknown"
}

var (
	// ErrOutOfRange means the requested section index does not exist.
	ErrOutOfRange = errors.New("section index out of range")

	// ErrInvalidState means an event was dispatched in a state that
	// does not accept it. A correct presenter never triggers this.
	ErrInvalidState = errors.New("invalid state for transition")

	// ErrAlreadyAnswered means the current question was already graded.
	// Guards against double-scoring a single answer event.
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Session is the quiz state machine: it tracks the active section, its
// shuffled question order, the current index, and the points earned so
// far this traversal. One live instance at a time; nothing here is
// persisted — only the progress tracker's state outlives it.
type Session struct {
	ID string

	bank    *questionbank.QuestionBank
	tracker *progress.Tracker
	logger  *slog.Logger

	state         State
	section       *questionbank.Section
	order         []questionbank.Question
	index         int
	answered      bool
	sectionPoints int
}

func New(bank *questionbank.QuestionBank, tracker *progress.Tracker, logger *slog.Logger) *Session {
	return &Session{
		ID:      id.GenerateID(),
		bank:    bank,
		tracker: tracker,
		logger:  logger,
		state:   StateIdle,
	}
}

func (s *Session) State() State {
	return s.state
}

// ── Presenter-facing views ──────────────────────────────────────────────────

// MenuEntry describes one section on the selection menu.
type MenuEntry struct {
	Index             int
	Title             string
	Score             int
	QuestionCount     int
	CompletionPercent int
}

// Menu lists every section with its cumulative score and completion
// percentage. Valid in any state.
func (s *Session) Menu() []MenuEntry {
	entries := make([]MenuEntry, 0, len(s.bank.Sections))
	for i, sec := range s.bank.Sections {
		entries = append(entries, MenuEntry{
			Index:             i,
			Title:             sec.Title,
			Score:             s.tracker.Score(sec.Title),
			QuestionCount:     len(sec.Questions),
			CompletionPercent: s.tracker.CompletionPercent(sec.Title, len(sec.Questions)),
		})
	}
	return entries
}

// QuestionView is the current question as the presenter should render it.
type QuestionView struct {
	Number  int // 1-based position within the section run
	Total   int
	Prompt  string
	Type    questionbank.QuestionType
	Options []string // freshly shuffled for mcq, nil otherwise
}

// CurrentQuestion returns the question at the current index. MCQ options
// are re-shuffled on every call so repeated renders vary, matching how
// the menu of choices is presented.
func (s *Session) CurrentQuestion() (QuestionView, error) {
	if s.state != StateInProgress {
		return QuestionView{}, fmt.Errorf("%w: no question in state %s", ErrInvalidState, s.state)
	}

	q := s.order[s.index]
	view := QuestionView{
		Number: s.index + 1,
		Total:  len(s.order),
		Prompt: q.Prompt,
		Type:   q.Type,
	}
	if q.Type == questionbank.TypeMCQ {
		view.Options = shuffleStrings(q.Options)
	}
	return view, nil
}

// SectionPoints returns the points earned so far in this traversal.
func (s *Session) SectionPoints() int {
	return s.sectionPoints
}

// ── Transitions ─────────────────────────────────────────────────────────────

// StartSection begins a fresh traversal of the section at sectionIndex
// with a newly shuffled question order. Valid from Idle or SectionComplete.
func (s *Session) StartSection(sectionIndex int) error {
	if s.state == StateInProgress {
		return fmt.Errorf("%w: cannot start a section while one is in progress", ErrInvalidState)
	}
	if sectionIndex < 0 || sectionIndex >= len(s.bank.Sections) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, sectionIndex)
	}

	s.section = &s.bank.Sections[sectionIndex]
	s.order = shuffleQuestions(s.section.Questions)
	s.index = 0
	s.answered = false
	s.sectionPoints = 0
	s.state = StateInProgress

	s.logger.Info("section started",
		"session", s.ID,
		"section", s.section.Title,
		"questions", len(s.order),
	)
	return nil
}

// AnswerResult is the feedback for a graded answer.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Points        int
}

// SubmitAnswer grades the raw answer for the current question, applies
// the points to the section's cumulative score, and records correctness
// in durable progress. At most one grading per question instance: a
// second call before Advance returns ErrAlreadyAnswered and changes
// nothing.
func (s *Session) SubmitAnswer(ctx context.Context, rawAnswer string) (AnswerResult, error) {
	if s.state != StateInProgress {
		return AnswerResult{}, fmt.Errorf("%w: cannot answer in state %s", ErrInvalidState, s.state)
	}
	if s.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	q := s.order[s.index]
	correct := scoring.Evaluate(q, rawAnswer)
	points := scoring.Score(q, correct)

	s.answered = true
	s.sectionPoints += points
	s.tracker.RecordAnswer(ctx, s.section.Title, s.index, correct, points)

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.AnswerText(),
		Points:        points,
	}, nil
}

// Advance moves to the next question, or to SectionComplete when the
// current question was the last. Valid only after the current question
// has been answered.
func (s *Session) Advance() error {
	if s.state != StateInProgress {
		return fmt.Errorf("%w: cannot advance in state %s", ErrInvalidState, s.state)
	}
	if !s.answered {
		return fmt.Errorf("%w: current question not answered yet", ErrInvalidState)
	}

	if s.index+1 < len(s.order) {
		s.index++
		s.answered = false
		return nil
	}

	s.state = StateSectionComplete
	s.logger.Info("section complete",
		"session", s.ID,
		"section", s.section.Title,
		"points", s.sectionPoints,
	)
	return nil
}

// Summary describes a finished section traversal.
type Summary struct {
	Title        string
	Score        int // points earned this traversal
	CorrectCount int
	Total        int
}

// Summary is valid only in SectionComplete.
func (s *Session) Summary() (Summary, error) {
	if s.state != StateSectionComplete {
		return Summary{}, fmt.Errorf("%w: no summary in state %s", ErrInvalidState, s.state)
	}
	return Summary{
		Title:        s.section.Title,
		Score:        s.sectionPoints,
		CorrectCount: s.tracker.CorrectCount(s.section.Title),
		Total:        len(s.order),
	}, nil
}

// ReturnToMenu discards the transient traversal state and re-enters
// Idle. Valid from any state. Persisted scores and progress are kept.
func (s *Session) ReturnToMenu() {
	s.state = StateIdle
	s.section = nil
	s.order = nil
	s.index = 0
	s.answered = false
	s.sectionPoints = 0
}

// ── Shuffle helpers ─────────────────────────────────────────────────────────

// shuffleQuestions returns a new slice with questions in random order.
func shuffleQuestions(questions []questionbank.Question) []questionbank.Question {
	shuffled := make([]questionbank.Question, len(questions))
	copy(shuffled, questions)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

func shuffleStrings(values []string) []string {
	shuffled := make([]string, len(values))
	copy(shuffled, values)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}
