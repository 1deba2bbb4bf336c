package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kirinyoku/courtbook/internal/service/booking"
)

const reconcileTimeout = time.Minute

// cronLogger routes robfig/cron's logging to slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}

// newReconciler schedules the booking reconciliation pass. Runs never
// overlap; a run still going when the next tick fires skips that tick.
func newReconciler(
	schedule string,
	reconcile func(ctx context.Context) (*booking.ReconcileReport, error),
	log *slog.Logger,
) (*cron.Cron, error) {
	const op = "app.newReconciler"

	cl := cronLogger{log: log.With("component", "reconciler")}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		report, err := reconcile(ctx)
		if err != nil {
			cl.log.Error("reconcile failed", "error", err)
			return
		}

		cl.log.Debug("reconcile finished",
			slog.Int("released", len(report.Released)),
			slog.Int("claimed", len(report.Claimed)),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return c, nil
}
