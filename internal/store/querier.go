package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the query surface shared by *Queries over a pool or a
// transaction. Mocks for it live in store/mock.
type Querier interface {
	InsertRawEvent(ctx context.Context, arg InsertRawEventParams) (bool, error)
	DeleteRawEventsForUser(ctx context.Context, arg UserScopeParams) (int64, error)

	StageOutboxEvent(ctx context.Context, arg StageOutboxEventParams) error
	LeaseOutboxBatch(ctx context.Context, limit int32) ([]LeasedOutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id int64) error
	MarkOutboxFailed(ctx context.Context, arg MarkOutboxFailedParams) error
	DeleteSentOutboxBefore(ctx context.Context, cutoff pgtype.Timestamptz) (int64, error)

	MarkEventProcessed(ctx context.Context, arg MarkEventProcessedParams) (bool, error)

	IsOptedOut(ctx context.Context, arg UserScopeParams) (bool, error)
	RecordOptOut(ctx context.Context, arg UserScopeParams) error
	DeleteOptOut(ctx context.Context, arg UserScopeParams) (int64, error)
	DeleteCustomer360ForUser(ctx context.Context, arg UserScopeParams) (int64, error)
	DeleteLicenseStateForUser(ctx context.Context, arg UserScopeParams) (int64, error)
	DeleteUserPresenceForUser(ctx context.Context, arg UserScopeParams) (int64, error)
	DeleteDevicePresenceForUser(ctx context.Context, arg UserScopeParams) (int64, error)

	InsertH3Cell(ctx context.Context, arg InsertH3CellParams) error
	LookupAdminCodes(ctx context.Context, arg LookupAdminCodesParams) ([]AdminAreaCode, error)
	LookupPlaceID(ctx context.Context, arg LookupPlaceIDParams) (string, error)

	InsertDevicePresence(ctx context.Context, arg InsertDevicePresenceParams) (bool, error)
	InsertUserPresence(ctx context.Context, arg InsertUserPresenceParams) (bool, error)
	UpsertH3Aggregate(ctx context.Context, arg UpsertH3AggregateParams) error
	UpsertPlaceAggregate(ctx context.Context, arg UpsertPlaceAggregateParams) error
	UpsertAdminAggregate(ctx context.Context, arg UpsertAdminAggregateParams) error

	UpsertCustomer360Geo(ctx context.Context, arg UpsertCustomer360GeoParams) error
	UpsertCustomer360License(ctx context.Context, arg UpsertCustomer360LicenseParams) error
	UpsertLicenseState(ctx context.Context, arg UpsertLicenseStateParams) error
}

var _ Querier = (*Queries)(nil)
