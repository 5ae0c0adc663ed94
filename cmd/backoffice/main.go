package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tableside/backoffice/internal/adapters/storage/memory"
	"github.com/tableside/backoffice/internal/adapters/storage/sqlite"
	"github.com/tableside/backoffice/internal/core/services"
	"github.com/tableside/backoffice/internal/platform/config"
	"github.com/tableside/backoffice/internal/platform/logging"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := logging.WithLogger(context.Background(), logger)

	// Durable session store (rememberMe sessions and branch preferences).
	db, err := sqlite.Open(cfg.SessionStorePath)
	if err != nil {
		logger.Error("Failed to open session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing session store", slog.String("error", cerr.Error()))
		}
	}()

	logger.Info("Running session store migrations...")
	if err := sqlite.RunMigrations(db); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Session store ready", slog.String("path", cfg.SessionStorePath))

	// The entity dataset is transient: rebuilt from seed data on every start.
	store := memory.NewStore()
	if err := memory.Seed(ctx, store, time.Now()); err != nil {
		logger.Error("Failed to seed entity store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := services.NewServiceContainer(
		cfg,
		store.Repositories(),
		sqlite.NewSessionStore(db),
		memory.NewSessionStore(),
		sqlite.NewBranchPreferenceStore(db),
	)

	// Re-enter a remembered session, if one survived the last run.
	session, err := container.Session.Resume(ctx)
	if err != nil {
		logger.Warn("Could not resume remembered session", slog.String("error", err.Error()))
	} else if session != nil {
		logger.Info("Remembered session resumed",
			slog.String("subject_id", session.SubjectID),
			slog.String("stage", string(session.Stage)))
	}

	// Change events are logged so operators can follow mutations in the
	// structured log stream.
	events, cancelEvents := container.Events.Subscribe(64)
	defer cancelEvents()
	go func() {
		for event := range events {
			logger.Debug("Change event",
				slog.String("entity_type", string(event.EntityType)),
				slog.String("entity_id", event.EntityID),
				slog.String("op", string(event.Op)))
		}
	}()

	// Overdue-debt sweep: re-derives debt statuses on a schedule so debts whose
	// due date passed while idle read back as overdue.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DebtSweepSpec, func() {
		updated, err := container.Ledger.RefreshDebtStatuses(ctx)
		if err != nil {
			logger.Error("Debt sweep failed", slog.String("error", err.Error()))
			return
		}
		if updated > 0 {
			logger.Info("Debt sweep completed", slog.Int("updated", updated))
		}
	}); err != nil {
		logger.Error("Failed to schedule debt sweep",
			slog.String("spec", cfg.DebtSweepSpec),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("Back office core started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
}
