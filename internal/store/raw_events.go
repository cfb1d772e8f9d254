package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertRawEvent = `
INSERT INTO raw_events (
    event_id, trace_id, producer, actor, app_uuid, event_type, event_ts,
    anon_user_id, device_id_hash, session_id, sdk_version, event_version,
    geo_point, geo_accuracy_m, geo_source, payload, context, raw_doc
) VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    $8, $9, $10, $11, $12,
    CASE WHEN $13::float8 IS NULL OR $14::float8 IS NULL THEN NULL
         ELSE ST_SetSRID(ST_MakePoint($14::float8, $13::float8), 4326) END,
    $15, $16, $17, $18, $19
)
ON CONFLICT (app_uuid, event_id) DO NOTHING
`

type InsertRawEventParams struct {
	EventID      pgtype.UUID
	TraceID      pgtype.UUID
	Producer     string
	Actor        string
	AppUUID      pgtype.UUID
	EventType    string
	EventTS      pgtype.Timestamptz
	AnonUserID   string
	DeviceIDHash string
	SessionID    string
	SDKVersion   string
	EventVersion string
	Lat          pgtype.Float8
	Lon          pgtype.Float8
	AccuracyM    pgtype.Float8
	GeoSource    pgtype.Text
	Payload      []byte
	Context      []byte
	RawDoc       []byte
}

// InsertRawEvent admits one event into raw_events. It reports false when
// (app_uuid, event_id) was already present, which is the ingest dedupe signal.
func (q *Queries) InsertRawEvent(ctx context.Context, arg InsertRawEventParams) (bool, error) {
	tag, err := q.db.Exec(ctx, insertRawEvent,
		arg.EventID,
		arg.TraceID,
		arg.Producer,
		arg.Actor,
		arg.AppUUID,
		arg.EventType,
		arg.EventTS,
		arg.AnonUserID,
		arg.DeviceIDHash,
		arg.SessionID,
		arg.SDKVersion,
		arg.EventVersion,
		arg.Lat,
		arg.Lon,
		arg.AccuracyM,
		arg.GeoSource,
		arg.Payload,
		arg.Context,
		arg.RawDoc,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const deleteRawEventsForUser = `
DELETE FROM raw_events WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteRawEventsForUser(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteRawEventsForUser, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
