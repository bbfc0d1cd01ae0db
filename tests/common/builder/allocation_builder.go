//go:build unit || e2e

package builder

import (
	"time"

	domquota "fuel-quota-service/internal/domain/quota"
	domvehicle "fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type AllocationBuilder struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	FuelType        string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	AllocatedAmount float64
	UsedAmount      float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewAllocationBuilder() *AllocationBuilder {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &AllocationBuilder{
		ID:              uuid.New(),
		VehicleID:       uuid.New(),
		FuelType:        "Petrol",
		PeriodStart:     start,
		PeriodEnd:       start.AddDate(0, 1, 0).Add(-time.Second),
		AllocatedAmount: 60,
		UsedAmount:      0,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
}

func (b *AllocationBuilder) With(mutate func(*AllocationBuilder)) *AllocationBuilder {
	mutate(b)
	return b
}

func (b *AllocationBuilder) BuildDomain() (*domquota.Allocation, error) {
	fuelType, err := domvehicle.NewFuelType(b.FuelType)
	if err != nil {
		return nil, err
	}
	period, err := domquota.NewPeriod(b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return nil, err
	}
	return domquota.ReconstructAllocation(
		b.ID, b.VehicleID, fuelType, period,
		b.AllocatedAmount, b.UsedAmount, b.CreatedAt, b.UpdatedAt,
	)
}

// BuildSnapshot matches the read-store row shape; registry attributes get
// placeholder values a view test can override through With.
func (b *AllocationBuilder) BuildSnapshot(registration, vehicleType string) *queries.QuotaSnapshot {
	return &queries.QuotaSnapshot{
		VehicleID:          b.VehicleID,
		RegistrationNumber: registration,
		VehicleType:        vehicleType,
		FuelType:           b.FuelType,
		PeriodStart:        b.PeriodStart,
		PeriodEnd:          b.PeriodEnd,
		AllocatedAmount:    b.AllocatedAmount,
		UsedAmount:         b.UsedAmount,
	}
}
