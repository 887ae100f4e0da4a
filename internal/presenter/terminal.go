package presenter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/quizdeck/quizdeck/internal/domain/questionbank"
	quizsession "github.com/quizdeck/quizdeck/internal/domain/quiz_session"
)

// Terminal drives a quiz session through a line-based terminal UI.
// Input and output are injected so the whole loop is testable without
// a TTY. Every input event is handled synchronously, persistence
// included, before the next prompt is shown.
type Terminal struct {
	session *quizsession.Session
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

func NewTerminal(session *quizsession.Session, in io.Reader, out io.Writer, logger *slog.Logger) *Terminal {
	return &Terminal{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run shows the section menu and loops until the user quits or input
// ends.
func (t *Terminal) Run(ctx context.Context) error {
	for {
		t.showMenu()

		line, ok := t.readLine()
		if !ok {
			t.logger.Info("input closed, exiting")
			return nil
		}
		if strings.EqualFold(line, "q") {
			fmt.Fprintln(t.out, "Bye!")
			return nil
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(t.out, "Pick a section number, or q to quit.")
			continue
		}

		if err := t.session.StartSection(choice - 1); err != nil {
			if errors.Is(err, quizsession.ErrOutOfRange) {
				fmt.Fprintln(t.out, "No such section.")
				continue
			}
			return err
		}

		if err := t.runSection(ctx); err != nil {
			return err
		}
	}
}

func (t *Terminal) showMenu() {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "=== Quiz Sections ===")
	for _, entry := range t.session.Menu() {
		fmt.Fprintf(t.out, "%d. %s  (score %d, %d%% complete)\n",
			entry.Index+1, entry.Title, entry.Score, entry.CompletionPercent)
	}
	fmt.Fprint(t.out, "Select a section (q to quit): ")
}

func (t *Terminal) runSection(ctx context.Context) error {
	for t.session.State() == quizsession.StateInProgress {
		view, err := t.session.CurrentQuestion()
		if err != nil {
			return err
		}

		fmt.Fprintf(t.out, "\n%d. %s\n", view.Number, view.Prompt)
		for i, opt := range view.Options {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(t.out, "Score: %d\n", t.session.SectionPoints())
		fmt.Fprint(t.out, answerPrompt(view))

		line, ok := t.readLine()
		if !ok {
			t.session.ReturnToMenu()
			return nil
		}

		result, err := t.session.SubmitAnswer(ctx, resolveAnswer(view, line))
		if err != nil {
			return err
		}

		if result.Correct {
			fmt.Fprintf(t.out, "Correct! +%d points\n", result.Points)
		} else {
			fmt.Fprintf(t.out, "Incorrect! Correct answer: %s\n", result.CorrectAnswer)
		}

		fmt.Fprint(t.out, "[Enter] next question ")
		if _, ok := t.readLine(); !ok {
			t.session.ReturnToMenu()
			return nil
		}

		if err := t.session.Advance(); err != nil {
			return err
		}
	}

	summary, err := t.session.Summary()
	if err != nil {
		return err
	}

	fmt.Fprintln(t.out, "\nSection Complete!")
	fmt.Fprintf(t.out, "Section: %s\n", summary.Title)
	fmt.Fprintf(t.out, "Score: %d\n", summary.Score)
	fmt.Fprintf(t.out, "Correct: %d of %d\n", summary.CorrectCount, summary.Total)

	t.session.ReturnToMenu()
	return nil
}

func answerPrompt(view quizsession.QuestionView) string {
	switch view.Type {
	case questionbank.TypeMCQ:
		return "Your choice: "
	case questionbank.TypeNumber:
		return "Enter your number answer: "
	default:
		return "Enter your text answer: "
	}
}

// resolveAnswer maps an mcq option number to the option's text. Any
// other input is passed through as the raw answer.
func resolveAnswer(view quizsession.QuestionView, line string) string {
	if view.Type != questionbank.TypeMCQ {
		return line
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err == nil && n >= 1 && n <= len(view.Options) {
		return view.Options[n-1]
	}
	return line
}

func (t *Terminal) readLine() (string, bool) {
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}
