// Package scheduler runs the periodic bill maintenance jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/notification"
)

// Worker rolls bills forward, refreshes their statuses and sends due-date reminders.
type Worker struct {
	ensureBills     *bill.EnsureBillsThroughUseCase
	refreshStatuses *bill.RefreshStatusesUseCase
	sendReminders   *notification.SendBillRemindersUseCase
	interval        time.Duration
	daysAhead       int
	now             func() time.Time
}

// WorkerConfig holds configuration for the scheduler worker.
type WorkerConfig struct {
	Interval  time.Duration
	DaysAhead int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval:  time.Hour,
		DaysAhead: notification.DefaultDaysAhead,
	}
}

// NewWorker creates a new scheduler worker.
func NewWorker(
	ensureBills *bill.EnsureBillsThroughUseCase,
	refreshStatuses *bill.RefreshStatusesUseCase,
	sendReminders *notification.SendBillRemindersUseCase,
	config WorkerConfig,
) *Worker {
	defaults := DefaultWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.DaysAhead <= 0 {
		config.DaysAhead = defaults.DaysAhead
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Worker{
		ensureBills:     ensureBills,
		refreshStatuses: refreshStatuses,
		sendReminders:   sendReminders,
		interval:        config.Interval,
		daysAhead:       config.DaysAhead,
		now:             config.Clock,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Scheduler started",
		"interval", w.interval,
		"days_ahead", w.daysAhead,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.runLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler shutting down")
			return
		case <-ticker.C:
			w.runLogged(ctx)
		}
	}
}

func (w *Worker) runLogged(ctx context.Context) {
	if err := w.RunOnce(ctx); err != nil {
		slog.Error("Scheduler run failed", "error", err)
	}
}

// RunOnce runs a single cycle. Bills are ensured through next month, so the
// upcoming bill of every card always exists. A failing step does not stop
// the following ones.
func (w *Worker) RunOnce(ctx context.Context) error {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	var errs []error

	ensured, err := w.ensureBills.Execute(ctx, bill.EnsureBillsThroughInput{
		Month: next.Month(),
		Year:  next.Year(),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to ensure bills: %w", err))
	} else {
		slog.Info("Bills ensured",
			"through", next.Format("2006-01"),
			"cards", ensured.CardsProcessed,
			"created", ensured.BillsCreated,
		)
	}

	refreshed, err := w.refreshStatuses.Execute(ctx, bill.RefreshStatusesInput{Now: now})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to refresh bill statuses: %w", err))
	} else {
		slog.Info("Bill statuses refreshed",
			"checked", refreshed.Checked,
			"updated", refreshed.Updated,
		)
	}

	if _, err := w.sendReminders.Execute(ctx, notification.SendBillRemindersInput{
		Now:       now,
		DaysAhead: w.daysAhead,
	}); err != nil {
		errs = append(errs, fmt.Errorf("failed to send bill reminders: %w", err))
	}

	return errors.Join(errs...)
}
