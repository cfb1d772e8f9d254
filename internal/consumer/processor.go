// Package consumer drives the delivery state machine of the event processor:
// decode, dedupe fence, opt-out fence, materialize, and settle every message
// exactly once via ack, bounded republish, or the dead-letter topic.
package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/config"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/envelope"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/geo"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/materializer"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/rabbit"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// Broker is the slice of the rabbit client the processor needs for retry and
// DLQ publish-back.
type Broker interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte, headers amqp.Table) error
}

type Processor struct {
	pool   *pgxpool.Pool
	broker Broker
	log    *zap.Logger

	consumerID string
	exchange   string
	topics     config.Topics
	strict     bool

	maxRetries int
	retryBase  time.Duration
	retryMax   time.Duration

	presence *materializer.Presence
	license  *materializer.License

	mu       sync.Mutex
	optedOut map[string]struct{}

	// runTx is swapped out by tests to run the per-message body against a
	// fake querier without a live pool.
	runTx func(ctx context.Context, fn func(q store.Querier) error) error
}

func New(pool *pgxpool.Pool, broker Broker, cfg config.Settings, log *zap.Logger) *Processor {
	p := &Processor{
		pool:       pool,
		broker:     broker,
		log:        log,
		consumerID: cfg.ProcessorGroupID,
		exchange:   cfg.Exchange,
		topics:     cfg.Topics,
		strict:     cfg.StrictEnvelope,
		maxRetries: cfg.ProcessorMaxRetries,
		retryBase:  cfg.ProcessorRetryBase,
		retryMax:   cfg.ProcessorRetryMax,
		presence:   materializer.NewPresence(geo.NewCellRegistry(), log),
		license:    materializer.NewLicense(log),
		optedOut:   make(map[string]struct{}),
	}
	p.runTx = p.poolTx
	return p
}

// Run consumes the geo and license queues until ctx is cancelled. Both
// streams share one channel and one prefetch window.
func (p *Processor) Run(ctx context.Context, client *rabbit.Client, prefetch int) error {
	geoDeliveries, err := client.Consume(rabbit.QueueName(p.topics.Geo), p.consumerID+"-geo", prefetch)
	if err != nil {
		return err
	}
	licenseDeliveries, err := client.Consume(rabbit.QueueName(p.topics.License), p.consumerID+"-license", prefetch)
	if err != nil {
		return err
	}

	p.log.Info("processor started",
		zap.String("consumer_id", p.consumerID),
		zap.String("geo_queue", rabbit.QueueName(p.topics.Geo)),
		zap.String("license_queue", rabbit.QueueName(p.topics.License)),
		zap.Int("prefetch", prefetch),
	)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("processor shutting down")
			return nil
		case d, ok := <-geoDeliveries:
			if !ok {
				return fmt.Errorf("geo delivery stream closed")
			}
			p.HandleDelivery(ctx, &d)
		case d, ok := <-licenseDeliveries:
			if !ok {
				return fmt.Errorf("license delivery stream closed")
			}
			p.HandleDelivery(ctx, &d)
		}
	}
}

// HandleDelivery settles one message: every path ends in an ack, except a
// failed retry republish, which nacks with requeue so the broker redelivers.
func (p *Processor) HandleDelivery(ctx context.Context, d *amqp.Delivery) {
	dec := json.NewDecoder(bytes.NewReader(d.Body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		p.publishDLQ(ctx, d.Body, "json_decode", err, nil)
		p.ack(d)
		return
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		p.publishDLQ(ctx, d.Body, "invalid_document_type", fmt.Errorf("expected object, got %T", raw), nil)
		p.ack(d)
		return
	}

	err := p.process(ctx, d.RoutingKey, doc)
	if err == nil {
		p.ack(d)
		return
	}

	var envErr *envelope.InvalidEnvelopeError
	if errors.As(err, &envErr) {
		p.publishDLQ(ctx, d.Body, "minimal_event", envErr, doc)
		p.ack(d)
		return
	}

	retry := retryCount(d.Headers)
	if isTransient(err) && retry < p.maxRetries {
		delay := p.retryDelay(retry)
		p.log.Warn("transient processor error",
			zap.Int("retry", retry+1),
			zap.Int("max_retries", p.maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		p.wait(ctx, delay)
		if pubErr := p.republish(ctx, d, retry+1); pubErr != nil {
			p.log.Error("republish failed, requeueing", zap.Error(pubErr))
			p.nack(d)
			return
		}
		p.ack(d)
		return
	}

	p.log.Error("message failed, parking on dlq", zap.Error(err))
	p.publishDLQ(ctx, d.Body, "unhandled", err, doc)
	p.ack(d)
}

// process runs the fences and the dispatch inside one transaction, so a
// materialization error rolls the dedupe fence back and the redelivery is
// not mistaken for a duplicate.
func (p *Processor) process(ctx context.Context, routingKey string, doc map[string]any) error {
	eventType := envelope.Stringify(doc["event_type"])
	if eventType == "" {
		eventType = envelope.Stringify(doc["event_name"])
	}

	return p.runTx(ctx, func(q store.Querier) error {
		fresh, err := p.claimDelivery(ctx, q, doc)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		skip, err := p.skipOptedOut(ctx, q, doc)
		if err != nil {
			return err
		}
		if skip {
			return nil
		}

		switch {
		case routingKey == p.topics.License || strings.HasPrefix(eventType, "license."):
			ev, err := envelope.Parse(doc, p.strict)
			if err != nil {
				return err
			}
			return p.license.Apply(ctx, q, ev)
		case eventType == "geo.ping":
			ev, err := envelope.Parse(doc, p.strict)
			if err != nil {
				return err
			}
			return p.presence.Apply(ctx, q, ev)
		default:
			return nil
		}
	})
}

func (p *Processor) poolTx(ctx context.Context, fn func(q store.Querier) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(store.New(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// claimDelivery inserts the dedupe fence row keyed by consumer group.
// Documents without parseable ids skip the fence; the envelope check settles
// them downstream.
func (p *Processor) claimDelivery(ctx context.Context, q store.Querier, doc map[string]any) (bool, error) {
	appRaw := envelope.Stringify(doc["app_uuid"])
	eventRaw := envelope.Stringify(doc["event_id"])
	if appRaw == "" || eventRaw == "" {
		return true, nil
	}
	appUUID, appErr := store.ParseUUID(appRaw)
	eventID, eventErr := store.ParseUUID(eventRaw)
	if appErr != nil || eventErr != nil {
		return true, nil
	}

	inserted, err := q.MarkEventProcessed(ctx, store.MarkEventProcessedParams{
		Consumer: p.consumerID,
		AppUUID:  appUUID,
		EventID:  eventID,
	})
	if err != nil {
		return false, fmt.Errorf("mark processed: %w", err)
	}
	return inserted, nil
}

// skipOptedOut consults the per-process cache first; only positive verdicts
// are cached so a later opt-out is still honored.
func (p *Processor) skipOptedOut(ctx context.Context, q store.Querier, doc map[string]any) (bool, error) {
	appRaw := envelope.Stringify(doc["app_uuid"])
	anonUserID := envelope.Stringify(doc["anon_user_id"])
	if appRaw == "" || anonUserID == "" {
		return false, nil
	}

	key := appRaw + "|" + anonUserID
	p.mu.Lock()
	_, cached := p.optedOut[key]
	p.mu.Unlock()
	if cached {
		return true, nil
	}

	appUUID, err := store.ParseUUID(appRaw)
	if err != nil {
		return false, nil
	}
	optedOut, err := q.IsOptedOut(ctx, store.UserScopeParams{AppUUID: appUUID, AnonUserID: anonUserID})
	if err != nil {
		return false, fmt.Errorf("check opt-out: %w", err)
	}
	if optedOut {
		p.mu.Lock()
		p.optedOut[key] = struct{}{}
		p.mu.Unlock()
	}
	return optedOut, nil
}

// republish sends the raw body back to its own queue with bumped retry
// headers, then the caller acks the original delivery.
func (p *Processor) republish(ctx context.Context, d *amqp.Delivery, retry int) error {
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers["sb_retry"] = int32(retry)
	headers["sb_retry_at"] = utcNowISO()

	return p.broker.Publish(ctx, p.exchange, d.RoutingKey, d.Body, headers)
}

func retryCount(headers amqp.Table) int {
	switch v := headers["sb_retry"].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func (p *Processor) retryDelay(attempt int) time.Duration {
	d := p.retryBase << uint(attempt)
	if d <= 0 || d > p.retryMax {
		return p.retryMax
	}
	return d
}

func (p *Processor) wait(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func (p *Processor) ack(d *amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		p.log.Error("ack failed", zap.Uint64("delivery_tag", d.DeliveryTag), zap.Error(err))
	}
}

func (p *Processor) nack(d *amqp.Delivery) {
	if err := d.Nack(false, true); err != nil {
		p.log.Error("nack failed", zap.Uint64("delivery_tag", d.DeliveryTag), zap.Error(err))
	}
}
