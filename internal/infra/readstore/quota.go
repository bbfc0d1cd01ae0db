package readstore

import (
	"context"
	"time"

	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuotaReadStore struct {
	db db.DBTX
}

func NewQuotaReadStore(dbtx db.DBTX) *QuotaReadStore {
	return &QuotaReadStore{db: dbtx}
}

const findQuotaSnapshotSQL = `
SELECT q.vehicle_id, v.registration_number, v.vehicle_type, q.fuel_type,
       q.period_start, q.period_end, q.allocated_amount, q.used_amount
FROM fuel_quotas q
JOIN vehicles v ON v.id = q.vehicle_id
WHERE q.vehicle_id = $1`

func (r *QuotaReadStore) FindSnapshotByVehicle(ctx context.Context, vehicleID uuid.UUID) (*queries.QuotaSnapshot, error) {
	row := r.db.QueryRow(ctx, findQuotaSnapshotSQL, vehicleID)

	var snap queries.QuotaSnapshot
	err := row.Scan(&snap.VehicleID, &snap.RegistrationNumber, &snap.VehicleType, &snap.FuelType,
		&snap.PeriodStart, &snap.PeriodEnd, &snap.AllocatedAmount, &snap.UsedAmount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("quota snapshot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find quota snapshot", err)
	}
	return &snap, nil
}

func (r *QuotaReadStore) ResolveVehicleID(ctx context.Context, registration string) (uuid.UUID, error) {
	normalized, err := vehicle.NormalizeRegistration(registration)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT id FROM vehicles WHERE registration_number = $1`, normalized).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve vehicle by registration", err)
	}
	return id, nil
}

const aggregateUtilizationSQL = `
SELECT count(*),
       coalesce(sum(allocated_amount), 0),
       coalesce(sum(used_amount), 0),
       count(*) FILTER (WHERE used_amount >= allocated_amount),
       count(*) FILTER (WHERE used_amount = 0)
FROM fuel_quotas
WHERE period_start >= $1 AND period_start <= $2`

// AggregateUtilization summarizes entitlement versus usage for allocations
// belonging to the given period.
func (r *QuotaReadStore) AggregateUtilization(ctx context.Context, periodStart, periodEnd time.Time) (*queries.UtilizationReport, error) {
	row := r.db.QueryRow(ctx, aggregateUtilizationSQL, pgconv.TimeToPgtype(periodStart), pgconv.TimeToPgtype(periodEnd))

	var report queries.UtilizationReport
	err := row.Scan(&report.VehicleCount, &report.TotalAllocated, &report.TotalUsed,
		&report.FullyUtilizedCount, &report.NeverUsedCount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate quota utilization", err)
	}

	if report.TotalAllocated > 0 {
		report.UtilizationPercentage = report.TotalUsed / report.TotalAllocated * 100
	}
	if report.VehicleCount > 0 {
		report.AverageUsedPerVehicle = report.TotalUsed / float64(report.VehicleCount)
	}
	return &report, nil
}
