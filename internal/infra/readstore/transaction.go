package readstore

import (
	"context"
	"strconv"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/dispense"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: dbtx}
}

const findSnapshotSQL = `
SELECT id, vehicle_id, station_id, fuel_type, amount, quota_after, created_at
FROM fuel_transactions
WHERE id = $1`

// FindByID resolves a committed transaction for idempotent replay.
func (r *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*commands.TransactionSnapshot, error) {
	row := r.db.QueryRow(ctx, findSnapshotSQL, id)

	var (
		snap    commands.TransactionSnapshot
		fuelRaw string
	)
	if err := row.Scan(&snap.ID, &snap.VehicleID, &snap.StationID, &fuelRaw, &snap.Amount, &snap.QuotaAfter, &snap.CreatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction by ID", err)
	}

	fuelType, err := vehicle.NewFuelType(fuelRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fuel type in transaction row", err)
	}
	snap.FuelType = fuelType
	return &snap, nil
}

const transactionViewColumns = `
t.id, t.vehicle_id, v.registration_number, t.station_id, s.name,
t.fuel_type, t.amount, t.quota_after, t.status, t.created_at`

const findViewSQL = `
SELECT ` + transactionViewColumns + `
FROM fuel_transactions t
JOIN vehicles v ON v.id = t.vehicle_id
JOIN fuel_stations s ON s.id = t.station_id
WHERE t.id = $1`

func (r *TransactionReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	row := r.db.QueryRow(ctx, findViewSQL, id)

	var (
		view      queries.TransactionView
		statusRaw string
	)
	err := row.Scan(&view.ID, &view.VehicleID, &view.RegistrationNumber, &view.StationID, &view.StationName,
		&view.FuelType, &view.Amount, &view.QuotaAfter, &statusRaw, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction view", err)
	}

	status, err := dispense.NewStatus(statusRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid status in transaction row", err)
	}
	view.Status = string(status)
	return &view, nil
}

// ListViews pages newest-first with a created_at keyset cursor.
func (r *TransactionReadStore) ListViews(ctx context.Context, filter queries.TransactionFilter) ([]*queries.TransactionView, error) {
	sql := `
SELECT ` + transactionViewColumns + `
FROM fuel_transactions t
JOIN vehicles v ON v.id = t.vehicle_id
JOIN fuel_stations s ON s.id = t.station_id
WHERE 1=1`

	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.StationID != nil {
		sql += ` AND t.station_id = ` + arg(*filter.StationID)
	}
	if filter.VehicleID != nil {
		sql += ` AND t.vehicle_id = ` + arg(*filter.VehicleID)
	}
	if filter.Before != nil {
		sql += ` AND t.created_at < ` + arg(pgconv.TimeToPgtype(*filter.Before))
	}
	sql += ` ORDER BY t.created_at DESC, t.id DESC LIMIT ` + arg(filter.Limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transaction views", err)
	}
	defer rows.Close()

	var views []*queries.TransactionView
	for rows.Next() {
		var (
			view      queries.TransactionView
			statusRaw string
		)
		err := rows.Scan(&view.ID, &view.VehicleID, &view.RegistrationNumber, &view.StationID, &view.StationName,
			&view.FuelType, &view.Amount, &view.QuotaAfter, &statusRaw, &view.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction view", err)
		}
		status, err := dispense.NewStatus(statusRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid status in transaction row", err)
		}
		view.Status = string(status)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transaction views", err)
	}
	return views, nil
}

const streamRecordsSQL = `
SELECT t.id, t.vehicle_id, v.registration_number, v.vehicle_type, v.owner_name,
       t.station_id, s.name, t.fuel_type, t.amount, t.created_at
FROM fuel_transactions t
JOIN vehicles v ON v.id = t.vehicle_id
JOIN fuel_stations s ON s.id = t.station_id
ORDER BY t.created_at, t.id`

// StreamRecords walks the whole transaction log in commit order for an
// analytics rebuild.
func (r *TransactionReadStore) StreamRecords(ctx context.Context, fn func(analytics.Record) error) error {
	rows, err := r.db.Query(ctx, streamRecordsSQL)
	if err != nil {
		return infra.WrapRepoErr("failed to stream transaction records", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec     analytics.Record
			fuelRaw string
		)
		err := rows.Scan(&rec.TransactionID, &rec.VehicleID, &rec.Registration, &rec.VehicleType, &rec.OwnerName,
			&rec.StationID, &rec.StationName, &fuelRaw, &rec.Amount, &rec.Timestamp)
		if err != nil {
			return infra.WrapRepoErr("failed to scan transaction record", err)
		}
		fuelType, err := vehicle.NewFuelType(fuelRaw)
		if err != nil {
			return infra.WrapRepoErr("invalid fuel type in transaction record", err)
		}
		rec.FuelType = fuelType

		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate transaction records", err)
	}
	return nil
}
