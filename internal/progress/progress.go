package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/quizdeck/quizdeck/internal/store"
)

// SectionProgress maps question index to whether it was answered correctly.
type SectionProgress map[int]bool

// Snapshot is the durable form of quiz progress. It survives restarts;
// everything else about a session is transient.
type Snapshot struct {
	SectionScores   map[string]int             `json:"sectionScores"`
	SectionProgress map[string]SectionProgress `json:"sectionProgress"`
}

func emptySnapshot() Snapshot {
	return Snapshot{
		SectionScores:   make(map[string]int),
		SectionProgress: make(map[string]SectionProgress),
	}
}

// Tracker holds the authoritative in-memory copy of quiz progress and
// mirrors it to durable storage after every scored answer. Storage
// failures are logged and swallowed: the quiz keeps running, progress
// just stops surviving restarts.
type Tracker struct {
	store  store.Store
	logger *slog.Logger
	snap   Snapshot
}

// NewTracker reads the persisted snapshot once and initializes every
// known section title to a zero score. A missing or corrupt snapshot
// yields the zero state, never an error.
func NewTracker(ctx context.Context, s store.Store, logger *slog.Logger, sectionTitles []string) *Tracker {
	t := &Tracker{
		store:  s,
		logger: logger,
		snap:   emptySnapshot(),
	}

	data, err := s.LoadProgress(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// first run, nothing persisted yet
	case err != nil:
		logger.Error("failed to load progress, starting fresh", "error", err)
	default:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Error("persisted progress is corrupt, starting fresh", "error", err)
		} else {
			if snap.SectionScores != nil {
				t.snap.SectionScores = snap.SectionScores
			}
			if snap.SectionProgress != nil {
				t.snap.SectionProgress = snap.SectionProgress
			}
		}
	}

	// Sections unseen by any previous run start at zero.
	for _, title := range sectionTitles {
		if _, ok := t.snap.SectionScores[title]; !ok {
			t.snap.SectionScores[title] = 0
		}
	}

	return t
}

// RecordAnswer adds points to the section's cumulative score, records
// whether the question at index was answered correctly, and persists
// the snapshot.
func (t *Tracker) RecordAnswer(ctx context.Context, sectionTitle string, index int, correct bool, points int) {
	t.snap.SectionScores[sectionTitle] += points

	sp, ok := t.snap.SectionProgress[sectionTitle]
	if !ok {
		sp = make(SectionProgress)
		t.snap.SectionProgress[sectionTitle] = sp
	}
	sp[index] = correct

	t.save(ctx)
}

func (t *Tracker) save(ctx context.Context) {
	data, err := json.Marshal(t.snap)
	if err != nil {
		t.logger.Error("failed to encode progress", "error", err)
		return
	}
	if err := t.store.SaveProgress(ctx, data); err != nil {
		t.logger.Error("failed to persist progress", "error", err)
	}
}

// Score returns the cumulative points earned in a section across all runs.
func (t *Tracker) Score(sectionTitle string) int {
	return t.snap.SectionScores[sectionTitle]
}

// CorrectCount returns how many of the section's answered questions
// were answered correctly.
func (t *Tracker) CorrectCount(sectionTitle string) int {
	count := 0
	for _, correct := range t.snap.SectionProgress[sectionTitle] {
		if correct {
			count++
		}
	}
	return count
}

// AnsweredCount returns how many of the section's questions have been
// answered at least once.
func (t *Tracker) AnsweredCount(sectionTitle string) int {
	return len(t.snap.SectionProgress[sectionTitle])
}

// CompletionPercent returns answered/total as a 0-100 percentage for
// menu display.
func (t *Tracker) CompletionPercent(sectionTitle string, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	answered := t.AnsweredCount(sectionTitle)
	if answered > totalQuestions {
		answered = totalQuestions
	}
	return answered * 100 / totalQuestions
}
