package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/quizdeck/quizdeck/internal/domain/questionbank"
	quizsession "github.com/quizdeck/quizdeck/internal/domain/quiz_session"
	"github.com/quizdeck/quizdeck/internal/infrastructure/config"
	"github.com/quizdeck/quizdeck/internal/presenter"
	"github.com/quizdeck/quizdeck/internal/progress"
	"github.com/quizdeck/quizdeck/internal/store"
)

func main() {
	cfg := config.Load()

	// stdout is the quiz UI, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.ProgressDBPath)
	if err != nil {
		logger.Error("failed to open progress database", "path", cfg.ProgressDBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	// One-time question bank load; nothing is selectable until it
	// resolves, and a failure leaves the quiz with no sections.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	bank, err := questionbank.Load(loadCtx, cfg.QuizDataSource)
	cancel()
	if err != nil {
		logger.Error("failed to load quiz data", "source", cfg.QuizDataSource, "error", err)
		fmt.Println("No sections available: quiz data could not be loaded.")
		os.Exit(1)
	}

	titles := make([]string, 0, len(bank.Sections))
	for _, sec := range bank.Sections {
		titles = append(titles, sec.Title)
	}

	tracker := progress.NewTracker(ctx, db, logger, titles)
	session := quizsession.New(bank, tracker, logger)
	term := presenter.NewTerminal(session, os.Stdin, os.Stdout, logger)

	if err := term.Run(ctx); err != nil {
		logger.Error("quiz run failed", "error", err)
		os.Exit(1)
	}
}
