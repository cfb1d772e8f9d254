package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const stageOutboxEvent = `
INSERT INTO outbox_events (app_uuid, event_id, trace_id, occurred_at, routing_key, payload)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (app_uuid, event_id, routing_key) DO NOTHING
`

type StageOutboxEventParams struct {
	AppUUID    pgtype.UUID
	EventID    pgtype.UUID
	TraceID    pgtype.UUID
	OccurredAt pgtype.Timestamptz
	RoutingKey string
	Payload    []byte
}

func (q *Queries) StageOutboxEvent(ctx context.Context, arg StageOutboxEventParams) error {
	_, err := q.db.Exec(ctx, stageOutboxEvent,
		arg.AppUUID,
		arg.EventID,
		arg.TraceID,
		arg.OccurredAt,
		arg.RoutingKey,
		arg.Payload,
	)
	return err
}

// leaseOutboxBatch selects and locks a batch in one statement, so two
// publishers can never lease the same row. Rows whose lease is older than
// the 5 minute TTL count as abandoned and become leasable again.
const leaseOutboxBatch = `
WITH cte AS (
    SELECT id
    FROM outbox_events
    WHERE status = 'pending'
      AND next_attempt_at <= now()
      AND (locked_at IS NULL OR locked_at < (now() - interval '5 minutes'))
    ORDER BY id
    FOR UPDATE SKIP LOCKED
    LIMIT $1
),
locked AS (
    UPDATE outbox_events o
    SET locked_at = now()
    FROM cte
    WHERE o.id = cte.id
    RETURNING o.id, o.routing_key, o.payload, o.retries
)
SELECT id, routing_key, payload, retries FROM locked
`

type LeasedOutboxEvent struct {
	ID         int64
	RoutingKey string
	Payload    []byte
	Retries    int32
}

func (q *Queries) LeaseOutboxBatch(ctx context.Context, limit int32) ([]LeasedOutboxEvent, error) {
	rows, err := q.db.Query(ctx, leaseOutboxBatch, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LeasedOutboxEvent
	for rows.Next() {
		var i LeasedOutboxEvent
		if err := rows.Scan(&i.ID, &i.RoutingKey, &i.Payload, &i.Retries); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const markOutboxSent = `
UPDATE outbox_events SET status = 'sent', locked_at = NULL WHERE id = $1
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, markOutboxSent, id)
	return err
}

const markOutboxFailed = `
UPDATE outbox_events
SET retries = retries + 1,
    last_error = $2,
    next_attempt_at = $3,
    locked_at = NULL,
    status = CASE WHEN retries + 1 >= $4 THEN 'failed' ELSE 'pending' END
WHERE id = $1
`

type MarkOutboxFailedParams struct {
	ID            int64
	LastError     string
	NextAttemptAt pgtype.Timestamptz
	MaxRetries    int32
}

func (q *Queries) MarkOutboxFailed(ctx context.Context, arg MarkOutboxFailedParams) error {
	_, err := q.db.Exec(ctx, markOutboxFailed,
		arg.ID,
		arg.LastError,
		arg.NextAttemptAt,
		arg.MaxRetries,
	)
	return err
}

const deleteSentOutboxBefore = `
DELETE FROM outbox_events WHERE status = 'sent' AND created_at < $1
`

func (q *Queries) DeleteSentOutboxBefore(ctx context.Context, cutoff pgtype.Timestamptz) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSentOutboxBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
