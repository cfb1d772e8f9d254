package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserScopeParams identifies one end user inside one app. Every privacy
// operation is scoped this way.
type UserScopeParams struct {
	AppUUID    pgtype.UUID
	AnonUserID string
}

const isOptedOut = `
SELECT 1 FROM opt_out WHERE app_uuid = $1 AND anon_user_id = $2 LIMIT 1
`

func (q *Queries) IsOptedOut(ctx context.Context, arg UserScopeParams) (bool, error) {
	var one int32
	err := q.db.QueryRow(ctx, isOptedOut, arg.AppUUID, arg.AnonUserID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const recordOptOut = `
INSERT INTO opt_out (app_uuid, anon_user_id)
VALUES ($1, $2)
ON CONFLICT (app_uuid, anon_user_id) DO NOTHING
`

func (q *Queries) RecordOptOut(ctx context.Context, arg UserScopeParams) error {
	_, err := q.db.Exec(ctx, recordOptOut, arg.AppUUID, arg.AnonUserID)
	return err
}

const deleteOptOut = `
DELETE FROM opt_out WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteOptOut(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteOptOut, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCustomer360ForUser = `
DELETE FROM customer_360 WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteCustomer360ForUser(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCustomer360ForUser, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteLicenseStateForUser = `
DELETE FROM license_state WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteLicenseStateForUser(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteLicenseStateForUser, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteUserPresenceForUser = `
DELETE FROM user_hourly_presence WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteUserPresenceForUser(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteUserPresenceForUser, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteDevicePresenceForUser = `
DELETE FROM device_hourly_presence WHERE app_uuid = $1 AND anon_user_id = $2
`

func (q *Queries) DeleteDevicePresenceForUser(ctx context.Context, arg UserScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteDevicePresenceForUser, arg.AppUUID, arg.AnonUserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
