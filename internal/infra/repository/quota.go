package repository

import (
	"context"
	"time"

	"fuel-quota-service/internal/domain/quota"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type QuotaRepository struct {
	db db.DBTX
}

func NewQuotaRepository(dbtx db.DBTX) *QuotaRepository {
	return &QuotaRepository{db: dbtx}
}

// LockVehicle takes a transaction-scoped advisory lock keyed on the vehicle
// ID. All ledger writers for the same vehicle queue behind it, which is what
// makes debit and rollover per-vehicle linearizable.
func (r *QuotaRepository) LockVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, vehicleID.String())
	if err != nil {
		return infra.WrapRepoErr("failed to lock vehicle ledger", err)
	}
	return nil
}

const findActiveQuotaSQL = `
SELECT id, vehicle_id, fuel_type, period_start, period_end,
       allocated_amount, used_amount, created_at, updated_at
FROM fuel_quotas
WHERE vehicle_id = $1 AND period_start <= $2`

func (r *QuotaRepository) FindActiveByVehicle(ctx context.Context, vehicleID uuid.UUID, now time.Time) (*quota.Allocation, error) {
	row := r.db.QueryRow(ctx, findActiveQuotaSQL, vehicleID, pgconv.TimeToPgtype(now))

	var (
		id, vID                uuid.UUID
		fuelTypeRaw            string
		periodStart, periodEnd time.Time
		allocated, used        float64
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &vID, &fuelTypeRaw, &periodStart, &periodEnd, &allocated, &used, &createdAt, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("quota allocation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find quota allocation", err)
	}

	fuelType, err := vehicle.NewFuelType(fuelTypeRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fuel type in quota row", err)
	}
	period, err := quota.NewPeriod(periodStart, periodEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid period in quota row", err)
	}

	alloc, err := quota.ReconstructAllocation(id, vID, fuelType, period, allocated, used, createdAt, updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt quota allocation row", err)
	}
	return alloc, nil
}

const updateQuotaUsageSQL = `
UPDATE fuel_quotas
SET used_amount = $2, updated_at = $3
WHERE id = $1`

func (r *QuotaRepository) UpdateUsage(ctx context.Context, alloc *quota.Allocation) error {
	tag, err := r.db.Exec(ctx, updateQuotaUsageSQL, alloc.ID(), alloc.UsedAmount(), pgconv.TimeToPgtype(alloc.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update quota usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("quota allocation not found for update", nil, infra.KindNotFound)
	}
	return nil
}

const replaceQuotaSQL = `
INSERT INTO fuel_quotas (id, vehicle_id, fuel_type, period_start, period_end,
                         allocated_amount, used_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (vehicle_id) DO UPDATE SET
	id = EXCLUDED.id,
	fuel_type = EXCLUDED.fuel_type,
	period_start = EXCLUDED.period_start,
	period_end = EXCLUDED.period_end,
	allocated_amount = EXCLUDED.allocated_amount,
	used_amount = EXCLUDED.used_amount,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at`

// Replace swaps the vehicle's allocation for a new period. Callers must hold
// the vehicle lock.
func (r *QuotaRepository) Replace(ctx context.Context, alloc *quota.Allocation) error {
	_, err := r.db.Exec(ctx, replaceQuotaSQL,
		alloc.ID(),
		alloc.VehicleID(),
		string(alloc.FuelType()),
		pgconv.TimeToPgtype(alloc.Period().Start()),
		pgconv.TimeToPgtype(alloc.Period().End()),
		alloc.AllocatedAmount(),
		alloc.UsedAmount(),
		pgconv.TimeToPgtype(alloc.CreatedAt()),
		pgconv.TimeToPgtype(alloc.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to replace quota allocation", err)
	}
	return nil
}
