package materializer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/envelope"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// License materializes license.* events into license_state and the license
// side of customer_360. The payload is schema-light: plan_type and
// license_status are recommended keys, everything else is best effort.
type License struct {
	log *zap.Logger
}

func NewLicense(log *zap.Logger) *License {
	return &License{log: log}
}

func (l *License) Apply(ctx context.Context, q store.Querier, ev *envelope.Event) error {
	appUUID, err := store.ParseUUID(ev.AppUUID)
	if err != nil {
		return fmt.Errorf("parse app_uuid: %w", err)
	}

	planType := payloadString(ev.Payload, "plan_type")
	status := payloadString(ev.Payload, "license_status")
	startedAt := maybeTime(ev.Payload["started_at"])
	renewedAt := maybeTime(ev.Payload["renewed_at"])
	expiresAt := maybeTime(ev.Payload["expires_at"])

	err = q.UpsertLicenseState(ctx, store.UpsertLicenseStateParams{
		AppUUID:       appUUID,
		AnonUserID:    ev.AnonUserID,
		DeviceIDHash:  ev.DeviceIDHash,
		PlanType:      planType,
		LicenseStatus: status,
		StartedAt:     startedAt,
		RenewedAt:     renewedAt,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		return fmt.Errorf("upsert license_state: %w", err)
	}

	err = q.UpsertCustomer360License(ctx, store.UpsertCustomer360LicenseParams{
		AppUUID:       appUUID,
		AnonUserID:    ev.AnonUserID,
		DeviceIDHash:  ev.DeviceIDHash,
		EventTS:       store.Timestamptz(ev.Timestamp),
		EventType:     ev.EventType,
		SessionID:     ev.SessionID,
		SDKVersion:    ev.SDKVersion,
		EventVersion:  ev.EventVersion,
		PlanType:      planType,
		LicenseStatus: status,
		StartedAt:     startedAt,
		RenewedAt:     renewedAt,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		return fmt.Errorf("upsert customer_360 license: %w", err)
	}
	return nil
}

func payloadString(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return "unknown"
	}
	return envelope.Stringify(v)
}

var licenseTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// maybeTime parses optional license dates leniently. Anything that is not
// an ISO-8601 string becomes NULL rather than failing the event.
func maybeTime(v any) pgtype.Timestamptz {
	s, ok := v.(string)
	if !ok {
		return pgtype.Timestamptz{}
	}
	s = strings.Replace(s, "Z", "+00:00", 1)
	for _, layout := range licenseTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Timestamptz{Time: t, Valid: true}
		}
	}
	return pgtype.Timestamptz{}
}
