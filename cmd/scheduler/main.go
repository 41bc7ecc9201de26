// Package main is the entry point for the MoneyFlow bill scheduler.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/infra/db"
	"github.com/finance-tracker/moneyflow/internal/infra/dependency"
	"github.com/finance-tracker/moneyflow/internal/infra/scheduler"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting MoneyFlow scheduler",
		"environment", cfg.Server.Environment,
		"interval", cfg.Email.SchedulerInterval,
		"once", *once,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	jobs, err := dependency.NewJobs(cfg, database.DB(), dependency.Externals{})
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	worker := scheduler.NewWorker(jobs.EnsureBills, jobs.RefreshStatuses, jobs.SendReminders, scheduler.WorkerConfig{
		Interval:  cfg.Email.SchedulerInterval,
		DaysAhead: cfg.Email.ReminderDaysAhead,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := worker.RunOnce(ctx); err != nil {
			slog.Error("Scheduler run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	worker.Start(ctx)
	slog.Info("Scheduler exited properly")
}
