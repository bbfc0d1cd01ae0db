package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fuel-quota-service/internal/domain/quota"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type RolloverResult struct {
	VehicleID       uuid.UUID
	AllocatedAmount float64
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

type BulkAllocateFilter struct {
	VehicleType *vehicle.VehicleType
	FuelType    *vehicle.FuelType
}

type BulkAllocateResult struct {
	AffectedVehicles int
	FailedVehicles   int
}

type QuotaCommands interface {
	Rollover(ctx context.Context, vehicleID uuid.UUID, amountOverride *float64) (*RolloverResult, error)
	BulkAllocate(ctx context.Context, filter BulkAllocateFilter, amountOverride *float64) (*BulkAllocateResult, error)
}

type quotaUseCaseImpl struct {
	vehicles    VehicleRegistry
	uow         shared.UnitOfWork
	invalidator QuotaCacheInvalidator
	clock       clock.Clock
	loc         *time.Location
}

func NewQuotaUseCase(
	vehicles VehicleRegistry,
	uow shared.UnitOfWork,
	invalidator QuotaCacheInvalidator,
	clock clock.Clock,
	loc *time.Location,
) QuotaCommands {
	return &quotaUseCaseImpl{
		vehicles:    vehicles,
		uow:         uow,
		invalidator: invalidator,
		clock:       clock,
		loc:         loc,
	}
}

// Rollover replaces the vehicle's allocation with a fresh one for the
// current calendar month. It takes the same per-vehicle lock as a debit, so
// an in-flight dispense either completes against the old period or starts
// against the new one, never a mix.
func (u *quotaUseCaseImpl) Rollover(ctx context.Context, vehicleID uuid.UUID, amountOverride *float64) (*RolloverResult, error) {
	vehicleEntity, err := u.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, markStorageErr(err, errs.ErrVehicleNotFound)
	}

	now := u.clock.Now()
	period := quota.CurrentMonth(now, u.loc)

	amount := quota.MonthlyAllocationFor(vehicleEntity.VehicleType(), vehicleEntity.FuelType(), vehicleEntity.EngineCapacity())
	if amountOverride != nil {
		amount = *amountOverride
	}

	alloc, err := quota.NewAllocation(vehicleID, vehicleEntity.FuelType(), period, amount, now)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Quotas().LockVehicle(ctx, vehicleID); err != nil {
			return err
		}
		if err := tx.Quotas().Replace(ctx, alloc); err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]any{
			"registration_number": vehicleEntity.RegistrationNumber(),
			"owner_contact":       vehicleEntity.OwnerContact(),
			"allocated_amount":    amount,
			"period_start":        period.Start(),
			"period_end":          period.End(),
		})
		if err != nil {
			return err
		}
		return tx.Notifications().CreateJob(ctx, "sms", "quota_allocated", payload, now)
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	u.invalidator.Invalidate(vehicleID)

	return &RolloverResult{
		VehicleID:       vehicleID,
		AllocatedAmount: amount,
		PeriodStart:     period.Start(),
		PeriodEnd:       period.End(),
	}, nil
}

// BulkAllocate rolls over every vehicle matching the filter. A failure for
// one vehicle does not stop the batch.
func (u *quotaUseCaseImpl) BulkAllocate(ctx context.Context, filter BulkAllocateFilter, amountOverride *float64) (*BulkAllocateResult, error) {
	ids, err := u.vehicles.ListIDs(ctx, filter.VehicleType, filter.FuelType)
	if err != nil {
		return nil, markStorageErr(err, errs.ErrStorageUnavailable)
	}

	result := &BulkAllocateResult{}
	for _, id := range ids {
		if _, err := u.Rollover(ctx, id, amountOverride); err != nil {
			slog.Warn("bulk allocation failed for vehicle", "vehicle_id", id, "error", err)
			result.FailedVehicles++
			continue
		}
		result.AffectedVehicles++
	}
	return result, nil
}
