package shared

import (
	"context"
	"encoding/json"
	"time"

	"fuel-quota-service/internal/domain/dispense"
	"fuel-quota-service/internal/domain/quota"

	"github.com/google/uuid"
)

// Tx exposes the write repositories bound to one database transaction.
type Tx interface {
	Quotas() QuotaRepository
	Transactions() TransactionRepository
	Idempotency() IdempotencyWriter
	Notifications() NotificationRepository
}

// UnitOfWork runs fn inside a transaction, retrying serialization failures
// with backoff. Commit happens only when fn returns nil.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// QuotaRepository serializes all ledger mutations per vehicle: LockVehicle
// must be called before reading the allocation inside a transaction, so a
// rollover can never interleave with an in-flight debit for that vehicle.
type QuotaRepository interface {
	LockVehicle(ctx context.Context, vehicleID uuid.UUID) error
	FindActiveByVehicle(ctx context.Context, vehicleID uuid.UUID, now time.Time) (*quota.Allocation, error)
	UpdateUsage(ctx context.Context, alloc *quota.Allocation) error
	Replace(ctx context.Context, alloc *quota.Allocation) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *dispense.Transaction) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type IdempotencyWriter interface {
	UpdateStatusCompleted(ctx context.Context, key, stationID uuid.UUID, resultTransactionID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload json.RawMessage, runAt time.Time) error
}
