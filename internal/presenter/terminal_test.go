package presenter_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/quizdeck/quizdeck/internal/domain/questionbank"
	quizsession "github.com/quizdeck/quizdeck/internal/domain/quiz_session"
	"github.com/quizdeck/quizdeck/internal/presenter"
	"github.com/quizdeck/quizdeck/internal/progress"
	"github.com/quizdeck/quizdeck/internal/store"
)

type memStore struct {
	data []byte
}

func (m *memStore) LoadProgress(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) SaveProgress(ctx context.Context, data []byte) error {
	m.data = data
	return nil
}

func (m *memStore) Close() error { return nil }

func runScripted(t *testing.T, bank *questionbank.QuestionBank, input string) string {
	t.Helper()

	titles := make([]string, 0, len(bank.Sections))
	for _, sec := range bank.Sections {
		titles = append(titles, sec.Title)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracker := progress.NewTracker(context.Background(), &memStore{}, logger, titles)
	session := quizsession.New(bank, tracker, logger)

	var out bytes.Buffer
	term := presenter.NewTerminal(session, strings.NewReader(input), &out, logger)
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out.String()
}

func TestRun_FullSectionTraversal(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Sections: []questionbank.Section{
			{
				Title: "Geography",
				Questions: []questionbank.Question{
					{Type: questionbank.TypeText, Prompt: "Capital of France?", Answer: "Paris"},
				},
			},
		},
	}

	// Select section 1, answer, advance past feedback, quit from the menu.
	out := runScripted(t, bank, "1\nparis\n\nq\n")

	for _, want := range []string{
		"Geography",
		"Capital of France?",
		"Correct! +15 points",
		"Section Complete!",
		"Score: 15",
		"Correct: 1 of 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n---\n%s", want, out)
		}
	}
}

func TestRun_MCQChoiceByNumber(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Sections: []questionbank.Section{
			{
				Title: "Chemistry",
				Questions: []questionbank.Question{
					{Type: questionbank.TypeMCQ, Prompt: "Symbol for water?", Options: []string{"H2O"}, Answer: "H2O"},
				},
			},
		},
	}

	out := runScripted(t, bank, "1\n1\n\nq\n")

	if !strings.Contains(out, "Correct! +10 points") {
		t.Errorf("expected mcq choice 1 to resolve to the option text\n---\n%s", out)
	}
}

func TestRun_IncorrectShowsCorrectAnswer(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Sections: []questionbank.Section{
			{
				Title: "Math",
				Questions: []questionbank.Question{
					{Type: questionbank.TypeNumber, Prompt: "2+2?", NumericAnswer: 4},
				},
			},
		},
	}

	out := runScripted(t, bank, "1\n5\n\nq\n")

	if !strings.Contains(out, "Incorrect! Correct answer: 4") {
		t.Errorf("expected incorrect feedback with the right answer\n---\n%s", out)
	}
}

func TestRun_InvalidSelection(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Sections: []questionbank.Section{
			{Title: "Only", Questions: []questionbank.Question{
				{Type: questionbank.TypeText, Prompt: "?", Answer: "x"},
			}},
		},
	}

	out := runScripted(t, bank, "9\nq\n")

	if !strings.Contains(out, "No such section.") {
		t.Errorf("expected out-of-range selection message\n---\n%s", out)
	}
}

func TestRun_EOFQuitsCleanly(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Sections: []questionbank.Section{
			{Title: "Only", Questions: []questionbank.Question{
				{Type: questionbank.TypeText, Prompt: "?", Answer: "x"},
			}},
		},
	}

	// Input ends mid-question; the presenter returns to menu and exits.
	out := runScripted(t, bank, "1\n")

	if !strings.Contains(out, "?") {
		t.Errorf("expected the question to be shown before EOF\n---\n%s", out)
	}
}
