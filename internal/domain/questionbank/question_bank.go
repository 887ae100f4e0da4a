package questionbank

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type QuestionType string

const (
	TypeMCQ    QuestionType = "mcq"
	TypeText   QuestionType = "text"
	TypeNumber QuestionType = "number"
)

// Question is a single quiz question. Immutable once loaded.
type Question struct {
	Type   QuestionType
	Prompt string

	// Options holds the answer choices. MCQ only.
	Options []string

	// Answer is the expected answer text for mcq and text questions.
	Answer string

	// NumericAnswer is the expected answer for number questions.
	NumericAnswer int64

	// TimeToAnswer is an optional per-question time budget in seconds.
	TimeToAnswer *float64
}

// AnswerText returns the expected answer as display text.
func (q Question) AnswerText() string {
	if q.Type == TypeNumber {
		return strconv.FormatInt(q.NumericAnswer, 10)
	}
	return q.Answer
}

// Section is a named, ordered group of questions. The title is the
// section's unique key in persisted progress.
type Section struct {
	Title     string
	Questions []Question
}

// QuestionBank is the loaded catalog of sections. Read-only after load.
type QuestionBank struct {
	Sections []Section
}

// ── Document decoding ───────────────────────────────────────────────────────

type questionDoc struct {
	QuestionType string          `json:"questionType"`
	Question     string          `json:"question"`
	Options      []string        `json:"options"`
	Answer       json.RawMessage `json:"answer"`
	TimeToAnswer *float64        `json:"timeToAnswer"`
}

type sectionDoc struct {
	SectionTitle string        `json:"sectionTitle"`
	Questions    []questionDoc `json:"questions"`
}

type bankDoc struct {
	Sections []sectionDoc `json:"sections"`
}

// Parse decodes and validates a quiz data document.
func Parse(data []byte) (*QuestionBank, error) {
	var doc bankDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	bank := &QuestionBank{Sections: make([]Section, 0, len(doc.Sections))}
	seenTitles := make(map[string]struct{})

	for si, sd := range doc.Sections {
		if sd.SectionTitle == "" {
			return nil, fmt.Errorf("%w: section %d has no title", ErrInvalidDocument, si)
		}
		if _, dup := seenTitles[sd.SectionTitle]; dup {
			return nil, fmt.Errorf("%w: duplicate section title %q", ErrInvalidDocument, sd.SectionTitle)
		}
		seenTitles[sd.SectionTitle] = struct{}{}

		if len(sd.Questions) == 0 {
			return nil, fmt.Errorf("%w: section %q has no questions", ErrInvalidDocument, sd.SectionTitle)
		}

		section := Section{Title: sd.SectionTitle, Questions: make([]Question, 0, len(sd.Questions))}
		for qi, qd := range sd.Questions {
			q, err := parseQuestion(qd)
			if err != nil {
				return nil, fmt.Errorf("%w: section %q question %d: %v", ErrInvalidDocument, sd.SectionTitle, qi, err)
			}
			section.Questions = append(section.Questions, q)
		}
		bank.Sections = append(bank.Sections, section)
	}

	return bank, nil
}

func parseQuestion(qd questionDoc) (Question, error) {
	q := Question{
		Type:         QuestionType(qd.QuestionType),
		Prompt:       qd.Question,
		Options:      qd.Options,
		TimeToAnswer: qd.TimeToAnswer,
	}

	if q.Prompt == "" {
		return Question{}, fmt.Errorf("question text is empty")
	}

	switch q.Type {
	case TypeMCQ:
		if err := json.Unmarshal(qd.Answer, &q.Answer); err != nil {
			return Question{}, fmt.Errorf("mcq answer must be a string")
		}
		if len(q.Options) == 0 {
			return Question{}, fmt.Errorf("mcq question has no options")
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return Question{}, fmt.Errorf("answer %q not among options", q.Answer)
		}

	case TypeText:
		if err := json.Unmarshal(qd.Answer, &q.Answer); err != nil {
			return Question{}, fmt.Errorf("text answer must be a string")
		}
		if q.Answer == "" {
			return Question{}, fmt.Errorf("text answer is empty")
		}

	case TypeNumber:
		n, err := parseNumericAnswer(qd.Answer)
		if err != nil {
			return Question{}, err
		}
		q.NumericAnswer = n

	default:
		return Question{}, fmt.Errorf("unknown question type %q", qd.QuestionType)
	}

	return q, nil
}

// parseNumericAnswer accepts a JSON number (integral) or a numeric string.
func parseNumericAnswer(raw json.RawMessage) (int64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("number answer must be an integer, got %v", f)
		}
		return int64(f), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("number answer %q is not numeric", s)
		}
		return n, nil
	}

	return 0, fmt.Errorf("number answer must be numeric")
}
