package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// The customer_360 row is touched by both pipelines. Geo events refresh the
// location columns and recount the active-hour tallies; license events
// refresh the plan columns. Both maintain the shared seen/last_* columns.

const upsertCustomer360Geo = `
INSERT INTO customer_360 (
    app_uuid, anon_user_id, device_id_hash,
    first_seen_at, last_seen_at,
    last_event_type, last_session_id, last_sdk_version, last_event_version,
    last_h3_r9, last_place_id,
    last_admin_country_code, last_admin_province_code, last_admin_municipality_code, last_admin_sector_code,
    geo_events_count, active_user_hours_count, active_device_hours_count,
    updated_at
)
VALUES (
    $1, $2, $3,
    $4, $4,
    $5, $6, $7, $8,
    $9, $10,
    $11, $12, $13, $14,
    1,
    (
        SELECT COUNT(*)
        FROM user_hourly_presence
        WHERE app_uuid = $1
          AND anon_user_id = $2
    ),
    (
        SELECT COUNT(*)
        FROM device_hourly_presence
        WHERE app_uuid = $1
          AND device_id_hash = $3
    ),
    now()
)
ON CONFLICT (app_uuid, anon_user_id)
DO UPDATE SET
    device_id_hash = EXCLUDED.device_id_hash,
    first_seen_at = LEAST(customer_360.first_seen_at, EXCLUDED.first_seen_at),
    last_seen_at = GREATEST(customer_360.last_seen_at, EXCLUDED.last_seen_at),
    last_event_type = EXCLUDED.last_event_type,
    last_session_id = EXCLUDED.last_session_id,
    last_sdk_version = EXCLUDED.last_sdk_version,
    last_event_version = EXCLUDED.last_event_version,
    last_h3_r9 = EXCLUDED.last_h3_r9,
    last_place_id = EXCLUDED.last_place_id,
    last_admin_country_code = EXCLUDED.last_admin_country_code,
    last_admin_province_code = EXCLUDED.last_admin_province_code,
    last_admin_municipality_code = EXCLUDED.last_admin_municipality_code,
    last_admin_sector_code = EXCLUDED.last_admin_sector_code,
    geo_events_count = customer_360.geo_events_count + 1,
    active_user_hours_count = (
        SELECT COUNT(*)
        FROM user_hourly_presence
        WHERE app_uuid = customer_360.app_uuid
          AND anon_user_id = customer_360.anon_user_id
    ),
    active_device_hours_count = (
        SELECT COUNT(*)
        FROM device_hourly_presence
        WHERE app_uuid = customer_360.app_uuid
          AND device_id_hash = EXCLUDED.device_id_hash
    ),
    updated_at = now()
`

type UpsertCustomer360GeoParams struct {
	AppUUID               pgtype.UUID
	AnonUserID            string
	DeviceIDHash          string
	EventTS               pgtype.Timestamptz
	EventType             string
	SessionID             string
	SDKVersion            string
	EventVersion          string
	H3R9                  pgtype.Text
	PlaceID               pgtype.Text
	AdminCountryCode      pgtype.Text
	AdminProvinceCode     pgtype.Text
	AdminMunicipalityCode pgtype.Text
	AdminSectorCode       pgtype.Text
}

func (q *Queries) UpsertCustomer360Geo(ctx context.Context, arg UpsertCustomer360GeoParams) error {
	_, err := q.db.Exec(ctx, upsertCustomer360Geo,
		arg.AppUUID,
		arg.AnonUserID,
		arg.DeviceIDHash,
		arg.EventTS,
		arg.EventType,
		arg.SessionID,
		arg.SDKVersion,
		arg.EventVersion,
		arg.H3R9,
		arg.PlaceID,
		arg.AdminCountryCode,
		arg.AdminProvinceCode,
		arg.AdminMunicipalityCode,
		arg.AdminSectorCode,
	)
	return err
}

const upsertCustomer360License = `
INSERT INTO customer_360 (
    app_uuid, anon_user_id, device_id_hash,
    first_seen_at, last_seen_at,
    last_event_type, last_session_id, last_sdk_version, last_event_version,
    license_events_count,
    last_plan_type, last_license_status,
    license_started_at, license_renewed_at, license_expires_at,
    updated_at
)
VALUES (
    $1, $2, $3,
    $4, $4,
    $5, $6, $7, $8,
    1,
    $9, $10,
    $11, $12, $13,
    now()
)
ON CONFLICT (app_uuid, anon_user_id)
DO UPDATE SET
    device_id_hash = EXCLUDED.device_id_hash,
    first_seen_at = LEAST(customer_360.first_seen_at, EXCLUDED.first_seen_at),
    last_seen_at = GREATEST(customer_360.last_seen_at, EXCLUDED.last_seen_at),
    last_event_type = EXCLUDED.last_event_type,
    last_session_id = EXCLUDED.last_session_id,
    last_sdk_version = EXCLUDED.last_sdk_version,
    last_event_version = EXCLUDED.last_event_version,
    license_events_count = customer_360.license_events_count + 1,
    last_plan_type = EXCLUDED.last_plan_type,
    last_license_status = EXCLUDED.last_license_status,
    license_started_at = EXCLUDED.license_started_at,
    license_renewed_at = EXCLUDED.license_renewed_at,
    license_expires_at = EXCLUDED.license_expires_at,
    updated_at = now()
`

type UpsertCustomer360LicenseParams struct {
	AppUUID       pgtype.UUID
	AnonUserID    string
	DeviceIDHash  string
	EventTS       pgtype.Timestamptz
	EventType     string
	SessionID     string
	SDKVersion    string
	EventVersion  string
	PlanType      string
	LicenseStatus string
	StartedAt     pgtype.Timestamptz
	RenewedAt     pgtype.Timestamptz
	ExpiresAt     pgtype.Timestamptz
}

func (q *Queries) UpsertCustomer360License(ctx context.Context, arg UpsertCustomer360LicenseParams) error {
	_, err := q.db.Exec(ctx, upsertCustomer360License,
		arg.AppUUID,
		arg.AnonUserID,
		arg.DeviceIDHash,
		arg.EventTS,
		arg.EventType,
		arg.SessionID,
		arg.SDKVersion,
		arg.EventVersion,
		arg.PlanType,
		arg.LicenseStatus,
		arg.StartedAt,
		arg.RenewedAt,
		arg.ExpiresAt,
	)
	return err
}
