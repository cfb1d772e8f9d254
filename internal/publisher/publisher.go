// Package publisher drains the transactional outbox into the RabbitMQ topic
// exchange. A compound SKIP LOCKED statement leases a batch, each row is
// published with its stored routing key, and failures are rescheduled with
// exponential backoff until the retry cap flips the row to failed.
package publisher

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// Broker is the slice of the rabbit client the worker needs.
type Broker interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error
}

type Worker struct {
	querier store.Querier
	broker  Broker
	log     *zap.Logger

	exchange   string
	batchSize  int32
	maxRetries int32
	idleWait   time.Duration
}

func NewWorker(querier store.Querier, broker Broker, exchange string, batchSize, maxRetries int, log *zap.Logger) *Worker {
	return &Worker{
		querier:    querier,
		broker:     broker,
		log:        log,
		exchange:   exchange,
		batchSize:  int32(batchSize),
		maxRetries: int32(maxRetries),
		idleWait:   time.Second,
	}
}

// Run polls until ctx is cancelled. Lease errors are logged and retried after
// the idle wait so a database hiccup never kills the worker.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("outbox publisher started",
		zap.String("exchange", w.exchange),
		zap.Int32("batch_size", w.batchSize),
		zap.Int32("max_retries", w.maxRetries),
	)

	for {
		if ctx.Err() != nil {
			w.log.Info("outbox publisher shutting down")
			return
		}

		processed, err := w.publishBatch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				w.log.Error("outbox batch failed", zap.Error(err))
			}
			w.idle(ctx)
			continue
		}
		if processed == 0 {
			w.idle(ctx)
		}
	}
}

// publishBatch leases one batch and walks it. Only fully delivered rows count
// as processed; an empty return tells Run to idle before the next poll.
func (w *Worker) publishBatch(ctx context.Context) (int, error) {
	batch, err := w.querier.LeaseOutboxBatch(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("lease outbox batch: %w", err)
	}

	processed := 0
	for _, ev := range batch {
		if ctx.Err() != nil {
			// Undelivered leases return via the 5 minute TTL.
			break
		}
		if err := w.deliver(ctx, ev); err != nil {
			w.reschedule(ctx, ev, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// deliver publishes one row and marks it sent. The mark runs after the
// publish, so a crash between the two re-delivers the message rather than
// losing it.
func (w *Worker) deliver(ctx context.Context, ev store.LeasedOutboxEvent) error {
	if err := w.broker.Publish(ctx, w.exchange, ev.RoutingKey, ev.Payload, nil); err != nil {
		return fmt.Errorf("publish %s: %w", ev.RoutingKey, err)
	}
	if err := w.querier.MarkOutboxSent(ctx, ev.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}

func (w *Worker) reschedule(ctx context.Context, ev store.LeasedOutboxEvent, cause error) {
	next := time.Now().Add(backoffDelay(ev.Retries))
	markErr := w.querier.MarkOutboxFailed(ctx, store.MarkOutboxFailedParams{
		ID:            ev.ID,
		LastError:     fmt.Sprintf("%T: %v", cause, cause),
		NextAttemptAt: store.Timestamptz(next),
		MaxRetries:    w.maxRetries,
	})
	if markErr != nil {
		// The lease TTL re-exposes the row even when this update is lost.
		w.log.Error("mark outbox failed",
			zap.Int64("outbox_id", ev.ID),
			zap.NamedError("cause", cause),
			zap.Error(markErr),
		)
		return
	}
	w.log.Warn("outbox publish failed",
		zap.Int64("outbox_id", ev.ID),
		zap.String("routing_key", ev.RoutingKey),
		zap.Int32("retries", ev.Retries+1),
		zap.Time("next_attempt_at", next),
		zap.Error(cause),
	)
}

func (w *Worker) idle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.idleWait):
	}
}

// backoffDelay grows 2s, 4s, 8s, ... and caps at 5 minutes.
func backoffDelay(retries int32) time.Duration {
	if retries >= 8 {
		return 300 * time.Second
	}
	return time.Duration(1<<uint(retries+1)) * time.Second
}
