package progress_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/quizdeck/quizdeck/internal/progress"
	"github.com/quizdeck/quizdeck/internal/store"
)

// memStore is an in-memory store.Store for tests.
type memStore struct {
	data    []byte
	loadErr error
	saveErr error
}

func (m *memStore) LoadProgress(ctx context.Context) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) SaveProgress(ctx context.Context, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = data
	return nil
}

func (m *memStore) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTracker_FreshStore(t *testing.T) {
	tr := progress.NewTracker(context.Background(), &memStore{}, testLogger(), []string{"Science", "History"})

	if got := tr.Score("Science"); got != 0 {
		t.Errorf("expected zero score for Science, got %d", got)
	}
	if got := tr.AnsweredCount("Science"); got != 0 {
		t.Errorf("expected no answered questions, got %d", got)
	}
}

func TestNewTracker_DefaultsUnseenSectionToZero(t *testing.T) {
	ms := &memStore{data: []byte(`{"sectionScores":{"Science":10},"sectionProgress":{"Science":{"0":true}}}`)}

	tr := progress.NewTracker(context.Background(), ms, testLogger(), []string{"Science", "History"})

	if got := tr.Score("Science"); got != 10 {
		t.Errorf("expected Science score 10, got %d", got)
	}
	if got := tr.Score("History"); got != 0 {
		t.Errorf("expected History to default to 0, got %d", got)
	}
	if got := tr.CorrectCount("Science"); got != 1 {
		t.Errorf("expected 1 correct answer in Science, got %d", got)
	}
}

func TestNewTracker_CorruptSnapshotYieldsZeroState(t *testing.T) {
	ms := &memStore{data: []byte(`not json at all`)}

	tr := progress.NewTracker(context.Background(), ms, testLogger(), []string{"Science"})

	if got := tr.Score("Science"); got != 0 {
		t.Errorf("expected zero state after corrupt snapshot, got score %d", got)
	}
}

func TestNewTracker_LoadErrorYieldsZeroState(t *testing.T) {
	ms := &memStore{loadErr: errors.New("disk on fire")}

	tr := progress.NewTracker(context.Background(), ms, testLogger(), []string{"Science"})

	if got := tr.Score("Science"); got != 0 {
		t.Errorf("expected zero state after load error, got score %d", got)
	}
}

func TestRecordAnswer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ms := &memStore{}
	titles := []string{"Science", "History"}

	tr := progress.NewTracker(ctx, ms, testLogger(), titles)
	tr.RecordAnswer(ctx, "Science", 0, true, 10)
	tr.RecordAnswer(ctx, "Science", 1, false, 0)
	tr.RecordAnswer(ctx, "History", 0, true, 15)

	// A fresh tracker reading the same store sees the same state.
	reloaded := progress.NewTracker(ctx, ms, testLogger(), titles)

	if got := reloaded.Score("Science"); got != 10 {
		t.Errorf("expected Science score 10, got %d", got)
	}
	if got := reloaded.Score("History"); got != 15 {
		t.Errorf("expected History score 15, got %d", got)
	}
	if got := reloaded.CorrectCount("Science"); got != 1 {
		t.Errorf("expected 1 correct in Science, got %d", got)
	}
	if got := reloaded.AnsweredCount("Science"); got != 2 {
		t.Errorf("expected 2 answered in Science, got %d", got)
	}
}

func TestRecordAnswer_OverwritesSameIndex(t *testing.T) {
	ctx := context.Background()
	tr := progress.NewTracker(ctx, &memStore{}, testLogger(), []string{"Science"})

	tr.RecordAnswer(ctx, "Science", 0, false, 0)
	tr.RecordAnswer(ctx, "Science", 0, true, 10)

	if got := tr.AnsweredCount("Science"); got != 1 {
		t.Errorf("expected 1 answered question, got %d", got)
	}
	if got := tr.CorrectCount("Science"); got != 1 {
		t.Errorf("expected re-answer to overwrite correctness, got %d correct", got)
	}
}

func TestRecordAnswer_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	ms := &memStore{saveErr: errors.New("write failed")}

	tr := progress.NewTracker(ctx, ms, testLogger(), []string{"Science"})
	tr.RecordAnswer(ctx, "Science", 0, true, 10)

	// The failure is swallowed; in-memory state still reflects the answer.
	if got := tr.Score("Science"); got != 10 {
		t.Errorf("expected in-memory score 10 despite save failure, got %d", got)
	}
}

func TestCompletionPercent(t *testing.T) {
	ctx := context.Background()
	tr := progress.NewTracker(ctx, &memStore{}, testLogger(), []string{"Science"})

	if got := tr.CompletionPercent("Science", 4); got != 0 {
		t.Errorf("expected 0%%, got %d%%", got)
	}

	tr.RecordAnswer(ctx, "Science", 0, true, 10)
	tr.RecordAnswer(ctx, "Science", 1, false, 0)

	if got := tr.CompletionPercent("Science", 4); got != 50 {
		t.Errorf("expected 50%%, got %d%%", got)
	}
	if got := tr.CompletionPercent("Science", 0); got != 0 {
		t.Errorf("expected 0%% for empty section, got %d%%", got)
	}
}
