package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// Janitor deletes sent outbox rows past the retention window on a cron
// schedule. Pending and failed rows are never touched.
type Janitor struct {
	cron      *cron.Cron
	querier   store.Querier
	log       *zap.Logger
	retention time.Duration
}

func NewJanitor(querier store.Querier, retention time.Duration, log *zap.Logger) *Janitor {
	return &Janitor{
		cron:      cron.New(),
		querier:   querier,
		log:       log,
		retention: retention,
	}
}

// Start registers the sweep at the given cron spec and starts the scheduler.
// Call Stop() to gracefully shut down.
func (j *Janitor) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.sweep); err != nil {
		return fmt.Errorf("schedule outbox cleanup %q: %w", spec, err)
	}
	j.cron.Start()
	j.log.Info("outbox janitor started",
		zap.String("schedule", spec),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop waits for a running sweep to finish before returning.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info("outbox janitor stopped")
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-j.retention)
	deleted, err := j.querier.DeleteSentOutboxBefore(ctx, store.Timestamptz(cutoff))
	if err != nil {
		j.log.Error("outbox cleanup failed", zap.Error(err))
		return
	}
	j.log.Info("outbox cleanup done",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff),
	)
}
