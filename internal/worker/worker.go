// Package worker wires up the cron job that rolls yesterday's keyword stats
// into the per-site daily summary.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/metrics"
)

// Roller writes the daily per-site roll-up for one date.
type Roller interface {
	RollupDay(ctx context.Context, date string) (int64, error)
}

// Worker wraps robfig/cron and manages the daily roll-up loop.
type Worker struct {
	cron    *cron.Cron
	roller  Roller
	spec    string
	metrics *metrics.Metrics
	logger  logger.Logger
}

// New creates a Worker firing on the given cron spec.
func New(roller Roller, spec string, m *metrics.Metrics, log logger.Logger) *Worker {
	return &Worker{
		cron:    cron.New(),
		roller:  roller,
		spec:    spec,
		metrics: m,
		logger:  log,
	}
}

// Start registers the job and starts the scheduler. The previous day is
// rolled up once immediately so a restart never leaves a gap.
func (w *Worker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		w.runRollup(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	w.cron.Start()
	w.logger.Info("rollup worker started", logger.String("spec", w.spec))

	go w.runRollup(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running job.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("rollup worker stopped")
}

// RunOnce rolls up a single date immediately. Used by the manual trigger
// endpoint and the startup catch-up.
func (w *Worker) RunOnce(ctx context.Context, date string) (int64, error) {
	start := time.Now()
	written, err := w.roller.RollupDay(ctx, date)
	w.metrics.RecordRollup(err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("rollup %s: %w", date, err)
	}

	w.logger.Info("daily rollup complete",
		logger.String("date", date),
		logger.Int64("sites", written),
		logger.Duration("took", time.Since(start)))
	return written, nil
}

func (w *Worker) runRollup(ctx context.Context) {
	date := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if _, err := w.RunOnce(ctx, date); err != nil {
		w.logger.Error("daily rollup failed", logger.String("date", date), logger.Error(err))
	}
}
