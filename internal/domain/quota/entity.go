package quota

import (
	"errors"
	"time"

	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

var (
	ErrQuotaExpired           = errors.New("quota period expired")
	ErrInsufficientQuota      = errors.New("insufficient remaining quota")
	ErrInvalidAmount          = errors.New("debit amount must be positive")
	ErrInvalidAllocation      = errors.New("allocated amount must be positive")
	ErrUsageExceedsAllocation = errors.New("used amount exceeds allocation")
)

// Allocation is the authoritative per-vehicle fuel entitlement for one
// period. usedAmount only ever grows, and only through Debit, so
// 0 <= usedAmount <= allocatedAmount holds at all times.
type Allocation struct {
	id              uuid.UUID
	vehicleID       uuid.UUID
	fuelType        vehicle.FuelType
	period          Period
	allocatedAmount float64
	usedAmount      float64
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAllocation(
	vehicleID uuid.UUID,
	fuelType vehicle.FuelType,
	period Period,
	allocatedAmount float64,
	now time.Time,
) (*Allocation, error) {
	if allocatedAmount <= 0 {
		return nil, ErrInvalidAllocation
	}
	return &Allocation{
		id:              uuid.New(),
		vehicleID:       vehicleID,
		fuelType:        fuelType,
		period:          period,
		allocatedAmount: allocatedAmount,
		usedAmount:      0,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructAllocation(
	id, vehicleID uuid.UUID,
	fuelType vehicle.FuelType,
	period Period,
	allocatedAmount, usedAmount float64,
	createdAt, updatedAt time.Time,
) (*Allocation, error) {
	if usedAmount < 0 || usedAmount > allocatedAmount {
		return nil, ErrUsageExceedsAllocation
	}
	return &Allocation{
		id:              id,
		vehicleID:       vehicleID,
		fuelType:        fuelType,
		period:          period,
		allocatedAmount: allocatedAmount,
		usedAmount:      usedAmount,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// Debit applies a dispense against the allocation. The expiry check runs
// before the balance check so an expired allocation never reports
// insufficient quota. Returns the new remaining amount.
func (a *Allocation) Debit(now time.Time, amount float64) (float64, error) {
	if amount <= 0 {
		return a.Remaining(), ErrInvalidAmount
	}
	if a.period.ExpiredAt(now) {
		return a.Remaining(), ErrQuotaExpired
	}
	if amount > a.Remaining() {
		return a.Remaining(), ErrInsufficientQuota
	}
	a.usedAmount += amount
	a.updatedAt = now
	return a.Remaining(), nil
}

func (a *Allocation) Remaining() float64 {
	return a.allocatedAmount - a.usedAmount
}

func (a *Allocation) UsagePercentage() float64 {
	if a.allocatedAmount == 0 {
		return 0
	}
	return a.usedAmount / a.allocatedAmount * 100
}

// RemainingPercentage feeds the low-quota warning thresholds.
func (a *Allocation) RemainingPercentage() float64 {
	if a.allocatedAmount == 0 {
		return 0
	}
	return a.Remaining() / a.allocatedAmount * 100
}

func (a *Allocation) ID() uuid.UUID              { return a.id }
func (a *Allocation) VehicleID() uuid.UUID       { return a.vehicleID }
func (a *Allocation) FuelType() vehicle.FuelType { return a.fuelType }
func (a *Allocation) Period() Period             { return a.period }
func (a *Allocation) AllocatedAmount() float64   { return a.allocatedAmount }
func (a *Allocation) UsedAmount() float64        { return a.usedAmount }
func (a *Allocation) CreatedAt() time.Time       { return a.createdAt }
func (a *Allocation) UpdatedAt() time.Time       { return a.updatedAt }
