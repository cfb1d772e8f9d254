// Package service holds the business logic behind the ingest API. Anything
// transactional opens its own tx from the pool; single-statement paths run
// on a store.Querier so tests can drive them with mocks.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/config"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/envelope"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/geo"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// RejectedEvent reports one document that was not admitted, by its position
// in the submitted batch.
type RejectedEvent struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// IngestResult summarizes one batch: rows newly admitted, rows already seen
// under the same (app_uuid, event_id), and per-document rejections.
type IngestResult struct {
	Accepted int             `json:"accepted"`
	Deduped  int             `json:"deduped"`
	Rejected []RejectedEvent `json:"rejected"`
}

type IngestService interface {
	IngestBatch(ctx context.Context, docs []map[string]any) (*IngestResult, error)
}

type ingestService struct {
	pool   *pgxpool.Pool
	topics config.Topics
	strict bool
}

func NewIngestService(pool *pgxpool.Pool, topics config.Topics, strict bool) IngestService {
	return &ingestService{pool: pool, topics: topics, strict: strict}
}

// IngestBatch admits a batch of event documents in a single transaction:
// either every admitted row and its outbox fan-out commit together, or none
// do. Per-document envelope failures and opt-outs are reported, not fatal.
func (s *ingestService) IngestBatch(ctx context.Context, docs []map[string]any) (*IngestResult, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: body must be a non-empty list", ErrInvalidInput)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback(ctx)
	qtx := store.New(tx)

	res := &IngestResult{Rejected: []RejectedEvent{}}
	optedOut := make(map[string]bool)
	for idx, doc := range docs {
		if err := s.admitEvent(ctx, qtx, doc, idx, res, optedOut); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit ingest tx: %w", err)
	}
	return res, nil
}

// admitEvent runs the per-document pipeline: envelope parse, privacy gate,
// raw_events insert, outbox staging. The memo caches positive opt-out
// answers for the life of the batch.
func (s *ingestService) admitEvent(
	ctx context.Context,
	q store.Querier,
	doc map[string]any,
	idx int,
	res *IngestResult,
	optedOut map[string]bool,
) error {
	ev, err := envelope.Parse(doc, s.strict)
	if err != nil {
		var envErr *envelope.InvalidEnvelopeError
		if errors.As(err, &envErr) {
			res.Rejected = append(res.Rejected, RejectedEvent{Index: idx, Error: envErr.Error()})
			return nil
		}
		return fmt.Errorf("parse event: %w", err)
	}

	appUUID, err := store.ParseUUID(ev.AppUUID)
	if err != nil {
		return fmt.Errorf("parse app_uuid: %w", err)
	}

	memoKey := ev.AppUUID + "|" + ev.AnonUserID
	opted := optedOut[memoKey]
	if !opted {
		opted, err = q.IsOptedOut(ctx, store.UserScopeParams{AppUUID: appUUID, AnonUserID: ev.AnonUserID})
		if err != nil {
			return fmt.Errorf("check opt-out: %w", err)
		}
	}
	if opted {
		optedOut[memoKey] = true
		res.Rejected = append(res.Rejected, RejectedEvent{Index: idx, Error: "opt_out"})
		return nil
	}

	eventID, err := store.ParseUUID(ev.EventID)
	if err != nil {
		return fmt.Errorf("parse event_id: %w", err)
	}
	traceID, err := store.ParseUUID(ev.TraceID)
	if err != nil {
		return fmt.Errorf("parse trace_id: %w", err)
	}

	payloadJSON, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	contextJSON, err := json.Marshal(ev.Context)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	rawDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal raw doc: %w", err)
	}

	lat, lon, accuracy, source := extractGeoPoint(ev.Context)
	inserted, err := q.InsertRawEvent(ctx, store.InsertRawEventParams{
		EventID:      eventID,
		TraceID:      traceID,
		Producer:     ev.Producer,
		Actor:        ev.Actor,
		AppUUID:      appUUID,
		EventType:    ev.EventType,
		EventTS:      store.Timestamptz(ev.Timestamp),
		AnonUserID:   ev.AnonUserID,
		DeviceIDHash: ev.DeviceIDHash,
		SessionID:    ev.SessionID,
		SDKVersion:   ev.SDKVersion,
		EventVersion: ev.EventVersion,
		Lat:          lat,
		Lon:          lon,
		AccuracyM:    accuracy,
		GeoSource:    source,
		Payload:      payloadJSON,
		Context:      contextJSON,
		RawDoc:       rawDoc,
	})
	if err != nil {
		return fmt.Errorf("insert raw event: %w", err)
	}
	if !inserted {
		res.Deduped++
		return nil
	}

	stagedJSON, err := json.Marshal(stagedPayload(doc, ev))
	if err != nil {
		return fmt.Errorf("marshal staged payload: %w", err)
	}
	for _, rk := range routingKeys(ev.EventType, s.topics) {
		err = q.StageOutboxEvent(ctx, store.StageOutboxEventParams{
			AppUUID:    appUUID,
			EventID:    eventID,
			TraceID:    traceID,
			OccurredAt: store.Timestamptz(ev.Timestamp),
			RoutingKey: rk,
			Payload:    stagedJSON,
		})
		if err != nil {
			return fmt.Errorf("stage outbox event %s: %w", rk, err)
		}
	}

	res.Accepted++
	return nil
}

// stagedPayload is the document as published downstream: the original doc
// with the normalized envelope keys overlaid so consumers never see a
// legacy-only shape.
func stagedPayload(doc map[string]any, ev *envelope.Event) map[string]any {
	staged := make(map[string]any, len(doc)+6)
	for k, v := range doc {
		staged[k] = v
	}
	staged["event_id"] = ev.EventID
	staged["trace_id"] = ev.TraceID
	staged["producer"] = ev.Producer
	staged["actor"] = ev.Actor
	staged["occurred_at"] = ev.Timestamp.Format(time.RFC3339Nano)
	staged["event_name"] = ev.EventType
	return staged
}

// routingKeys fans one event out to its topic family. Every event reaches
// the raw firehose; the rest match on event type.
func routingKeys(eventType string, topics config.Topics) []string {
	keys := []string{topics.Raw}
	if eventType == "geo.ping" {
		keys = append(keys, topics.Geo)
	}
	for _, family := range []struct{ prefix, topic string }{
		{"license.", topics.License},
		{"session.", topics.Session},
		{"screen.", topics.Screen},
		{"ui.", topics.UI},
		{"system.", topics.System},
	} {
		if strings.HasPrefix(eventType, family.prefix) {
			keys = append(keys, family.topic)
		}
	}
	return keys
}

func extractGeoPoint(evtContext map[string]any) (lat, lon, accuracy pgtype.Float8, source pgtype.Text) {
	g, _ := evtContext["geo"].(map[string]any)
	if v, ok := geo.Numeric(g["lat"]); ok {
		lat = pgtype.Float8{Float64: v, Valid: true}
	}
	if v, ok := geo.Numeric(g["lon"]); ok {
		lon = pgtype.Float8{Float64: v, Valid: true}
	}
	if v, ok := geo.Numeric(g["accuracy_m"]); ok {
		accuracy = pgtype.Float8{Float64: v, Valid: true}
	}
	if src, ok := g["source"]; ok && src != nil {
		source = pgtype.Text{String: envelope.Stringify(src), Valid: true}
	}
	return lat, lon, accuracy, source
}
