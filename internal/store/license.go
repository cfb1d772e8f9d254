package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertLicenseState = `
INSERT INTO license_state (
    app_uuid, anon_user_id, device_id_hash,
    plan_type, license_status,
    started_at, renewed_at, expires_at,
    updated_at
)
VALUES (
    $1, $2, $3,
    $4, $5,
    $6, $7, $8,
    now()
)
ON CONFLICT (app_uuid, anon_user_id)
DO UPDATE SET
    device_id_hash = EXCLUDED.device_id_hash,
    plan_type = EXCLUDED.plan_type,
    license_status = EXCLUDED.license_status,
    started_at = EXCLUDED.started_at,
    renewed_at = EXCLUDED.renewed_at,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()
`

type UpsertLicenseStateParams struct {
	AppUUID       pgtype.UUID
	AnonUserID    string
	DeviceIDHash  string
	PlanType      string
	LicenseStatus string
	StartedAt     pgtype.Timestamptz
	RenewedAt     pgtype.Timestamptz
	ExpiresAt     pgtype.Timestamptz
}

func (q *Queries) UpsertLicenseState(ctx context.Context, arg UpsertLicenseStateParams) error {
	_, err := q.db.Exec(ctx, upsertLicenseState,
		arg.AppUUID,
		arg.AnonUserID,
		arg.DeviceIDHash,
		arg.PlanType,
		arg.LicenseStatus,
		arg.StartedAt,
		arg.RenewedAt,
		arg.ExpiresAt,
	)
	return err
}
