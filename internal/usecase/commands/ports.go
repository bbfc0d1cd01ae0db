package commands

import (
	"context"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/station"
	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

// VehicleRegistry is the external vehicle registry collaborator; the core
// never writes through it.
type VehicleRegistry interface {
	FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	ListIDs(ctx context.Context, vehicleType *vehicle.VehicleType, fuelType *vehicle.FuelType) ([]uuid.UUID, error)
}

// StationRegistry is the external station registry collaborator.
type StationRegistry interface {
	FindByID(ctx context.Context, id uuid.UUID) (*station.Station, error)
}

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	StationID           uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              IdempotencyStatus
	ResultTransactionID *uuid.UUID
	ExpiresAt           time.Time
}

// IdempotencyRepository claims and inspects idempotency keys outside the
// ledger transaction. TryInsert reports whether the key was freshly claimed;
// Delete releases a processing claim whose attempt failed before commit.
type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, stationID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, stationID uuid.UUID) (*IdempotencyRecord, error)
	Delete(ctx context.Context, key, stationID uuid.UUID) error
}

// TransactionReader resolves a committed transaction for idempotent replay.
type TransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionSnapshot, error)
}

type TransactionSnapshot struct {
	ID         uuid.UUID
	VehicleID  uuid.UUID
	StationID  uuid.UUID
	FuelType   vehicle.FuelType
	Amount     float64
	QuotaAfter float64
	CreatedAt  time.Time
}

// AnalyticsSink receives committed transactions for incremental aggregation.
type AnalyticsSink interface {
	Apply(rec analytics.Record)
}

// QuotaCacheInvalidator drops cached quota views after a successful write.
type QuotaCacheInvalidator interface {
	Invalidate(vehicleID uuid.UUID)
}
