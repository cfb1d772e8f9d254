package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const markEventProcessed = `
INSERT INTO processed_events (consumer, app_uuid, event_id)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING
RETURNING 1
`

type MarkEventProcessedParams struct {
	Consumer string
	AppUUID  pgtype.UUID
	EventID  pgtype.UUID
}

// MarkEventProcessed claims (consumer, app_uuid, event_id) for exactly one
// delivery. It reports false when another delivery already holds the claim.
func (q *Queries) MarkEventProcessed(ctx context.Context, arg MarkEventProcessedParams) (bool, error) {
	var one int32
	err := q.db.QueryRow(ctx, markEventProcessed, arg.Consumer, arg.AppUUID, arg.EventID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
