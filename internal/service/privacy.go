package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// DeletionReport lists how many rows each table lost for one user scope.
type DeletionReport struct {
	AppUUID    string           `json:"app_uuid"`
	AnonUserID string           `json:"anon_user_id"`
	Deleted    map[string]int64 `json:"deleted"`
}

type PrivacyService interface {
	OptOut(ctx context.Context, appUUID, anonUserID string) error
	DeleteUserData(ctx context.Context, appUUID, anonUserID string, deleteOptOut bool) (*DeletionReport, error)
}

type privacyService struct {
	pool    *pgxpool.Pool
	querier store.Querier
}

func NewPrivacyService(pool *pgxpool.Pool, querier store.Querier) PrivacyService {
	return &privacyService{pool: pool, querier: querier}
}

// OptOut records that a user withdrew consent. Ingest rejects and the
// processor drops their events from then on. Recording twice is a no-op.
func (s *privacyService) OptOut(ctx context.Context, appUUID, anonUserID string) error {
	scope, err := userScope(appUUID, anonUserID)
	if err != nil {
		return err
	}
	if err := s.querier.RecordOptOut(ctx, scope); err != nil {
		return fmt.Errorf("record opt-out: %w", err)
	}
	return nil
}

// DeleteUserData removes all stored rows for the user in one transaction.
// Messages already published to the broker are append-only and stay; the
// opt_out row stays too unless deleteOptOut is set.
func (s *privacyService) DeleteUserData(ctx context.Context, appUUID, anonUserID string, deleteOptOut bool) (*DeletionReport, error) {
	scope, err := userScope(appUUID, anonUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted, err := purgeUserData(ctx, store.New(tx), scope, deleteOptOut)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit delete tx: %w", err)
	}
	return &DeletionReport{AppUUID: appUUID, AnonUserID: anonUserID, Deleted: deleted}, nil
}

func purgeUserData(ctx context.Context, q store.Querier, scope store.UserScopeParams, deleteOptOut bool) (map[string]int64, error) {
	type step struct {
		table string
		fn    func(context.Context, store.UserScopeParams) (int64, error)
	}
	steps := []step{
		{"customer_360", q.DeleteCustomer360ForUser},
		{"license_state", q.DeleteLicenseStateForUser},
		{"user_hourly_presence", q.DeleteUserPresenceForUser},
		{"device_hourly_presence", q.DeleteDevicePresenceForUser},
		{"raw_events", q.DeleteRawEventsForUser},
	}
	if deleteOptOut {
		steps = append(steps, step{"opt_out", q.DeleteOptOut})
	}

	deleted := make(map[string]int64, len(steps))
	for _, st := range steps {
		n, err := st.fn(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("delete %s rows: %w", st.table, err)
		}
		deleted[st.table] = n
	}
	return deleted, nil
}

func userScope(appUUID, anonUserID string) (store.UserScopeParams, error) {
	if appUUID == "" || anonUserID == "" {
		return store.UserScopeParams{}, fmt.Errorf("%w: app_uuid and anon_user_id are required", ErrInvalidInput)
	}
	id, err := store.ParseUUID(appUUID)
	if err != nil {
		return store.UserScopeParams{}, fmt.Errorf("%w: app_uuid must be a UUID", ErrInvalidInput)
	}
	return store.UserScopeParams{AppUUID: id, AnonUserID: anonUserID}, nil
}
