package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertDevicePresence = `
INSERT INTO device_hourly_presence (
    app_uuid, hour_bucket, device_id_hash, anon_user_id,
    h3_r7, h3_r9, h3_r11, place_id,
    admin_country_code, admin_province_code, admin_municipality_code, admin_sector_code,
    geo_accuracy_m, geo_precision_class, first_event_ts
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8,
    $9, $10, $11, $12,
    $13, $14, $15
)
ON CONFLICT (app_uuid, hour_bucket, device_id_hash) DO NOTHING
RETURNING 1
`

type InsertDevicePresenceParams struct {
	AppUUID               pgtype.UUID
	HourBucket            pgtype.Timestamptz
	DeviceIDHash          string
	AnonUserID            string
	H3R7                  string
	H3R9                  string
	H3R11                 string
	PlaceID               pgtype.Text
	AdminCountryCode      pgtype.Text
	AdminProvinceCode     pgtype.Text
	AdminMunicipalityCode pgtype.Text
	AdminSectorCode       pgtype.Text
	GeoAccuracyM          pgtype.Float8
	GeoPrecisionClass     string
	FirstEventTS          pgtype.Timestamptz
}

// InsertDevicePresence reports true only for the first event of that device
// in that hour. The result feeds devices_count in the hourly aggregates.
func (q *Queries) InsertDevicePresence(ctx context.Context, arg InsertDevicePresenceParams) (bool, error) {
	var one int32
	err := q.db.QueryRow(ctx, insertDevicePresence,
		arg.AppUUID,
		arg.HourBucket,
		arg.DeviceIDHash,
		arg.AnonUserID,
		arg.H3R7,
		arg.H3R9,
		arg.H3R11,
		arg.PlaceID,
		arg.AdminCountryCode,
		arg.AdminProvinceCode,
		arg.AdminMunicipalityCode,
		arg.AdminSectorCode,
		arg.GeoAccuracyM,
		arg.GeoPrecisionClass,
		arg.FirstEventTS,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const insertUserPresence = `
INSERT INTO user_hourly_presence (
    app_uuid, hour_bucket, anon_user_id,
    h3_r7, h3_r9, h3_r11, place_id,
    admin_country_code, admin_province_code, admin_municipality_code, admin_sector_code,
    geo_accuracy_m, geo_precision_class, first_event_ts
) VALUES (
    $1, $2, $3,
    $4, $5, $6, $7,
    $8, $9, $10, $11,
    $12, $13, $14
)
ON CONFLICT (app_uuid, hour_bucket, anon_user_id) DO NOTHING
RETURNING 1
`

type InsertUserPresenceParams struct {
	AppUUID               pgtype.UUID
	HourBucket            pgtype.Timestamptz
	AnonUserID            string
	H3R7                  string
	H3R9                  string
	H3R11                 string
	PlaceID               pgtype.Text
	AdminCountryCode      pgtype.Text
	AdminProvinceCode     pgtype.Text
	AdminMunicipalityCode pgtype.Text
	AdminSectorCode       pgtype.Text
	GeoAccuracyM          pgtype.Float8
	GeoPrecisionClass     string
	FirstEventTS          pgtype.Timestamptz
}

func (q *Queries) InsertUserPresence(ctx context.Context, arg InsertUserPresenceParams) (bool, error) {
	var one int32
	err := q.db.QueryRow(ctx, insertUserPresence,
		arg.AppUUID,
		arg.HourBucket,
		arg.AnonUserID,
		arg.H3R7,
		arg.H3R9,
		arg.H3R11,
		arg.PlaceID,
		arg.AdminCountryCode,
		arg.AdminProvinceCode,
		arg.AdminMunicipalityCode,
		arg.AdminSectorCode,
		arg.GeoAccuracyM,
		arg.GeoPrecisionClass,
		arg.FirstEventTS,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const upsertH3Aggregate = `
INSERT INTO agg_h3_r9_hourly (app_uuid, hour_bucket, h3_r9, devices_count, users_count, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (app_uuid, hour_bucket, h3_r9)
DO UPDATE SET
  devices_count = agg_h3_r9_hourly.devices_count + EXCLUDED.devices_count,
  users_count = agg_h3_r9_hourly.users_count + EXCLUDED.users_count,
  updated_at = now()
`

type UpsertH3AggregateParams struct {
	AppUUID    pgtype.UUID
	HourBucket pgtype.Timestamptz
	H3R9       string
	DevicesInc int64
	UsersInc   int64
}

func (q *Queries) UpsertH3Aggregate(ctx context.Context, arg UpsertH3AggregateParams) error {
	_, err := q.db.Exec(ctx, upsertH3Aggregate,
		arg.AppUUID,
		arg.HourBucket,
		arg.H3R9,
		arg.DevicesInc,
		arg.UsersInc,
	)
	return err
}

const upsertPlaceAggregate = `
INSERT INTO agg_place_hourly (app_uuid, hour_bucket, place_id, devices_count, users_count, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (app_uuid, hour_bucket, place_id)
DO UPDATE SET
  devices_count = agg_place_hourly.devices_count + EXCLUDED.devices_count,
  users_count = agg_place_hourly.users_count + EXCLUDED.users_count,
  updated_at = now()
`

type UpsertPlaceAggregateParams struct {
	AppUUID    pgtype.UUID
	HourBucket pgtype.Timestamptz
	PlaceID    string
	DevicesInc int64
	UsersInc   int64
}

func (q *Queries) UpsertPlaceAggregate(ctx context.Context, arg UpsertPlaceAggregateParams) error {
	_, err := q.db.Exec(ctx, upsertPlaceAggregate,
		arg.AppUUID,
		arg.HourBucket,
		arg.PlaceID,
		arg.DevicesInc,
		arg.UsersInc,
	)
	return err
}

const upsertAdminAggregate = `
INSERT INTO agg_admin_hourly (app_uuid, hour_bucket, level, code, devices_count, users_count, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (app_uuid, hour_bucket, level, code)
DO UPDATE SET
  devices_count = agg_admin_hourly.devices_count + EXCLUDED.devices_count,
  users_count = agg_admin_hourly.users_count + EXCLUDED.users_count,
  updated_at = now()
`

type UpsertAdminAggregateParams struct {
	AppUUID    pgtype.UUID
	HourBucket pgtype.Timestamptz
	Level      string
	Code       string
	DevicesInc int64
	UsersInc   int64
}

func (q *Queries) UpsertAdminAggregate(ctx context.Context, arg UpsertAdminAggregateParams) error {
	_, err := q.db.Exec(ctx, upsertAdminAggregate,
		arg.AppUUID,
		arg.HourBucket,
		arg.Level,
		arg.Code,
		arg.DevicesInc,
		arg.UsersInc,
	)
	return err
}
