package readstore

import (
	"context"
	"time"

	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// VehicleReadStore reads the registry-owned vehicles table. The core never
// writes it.
type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

const vehicleColumns = `id, registration_number, vehicle_type, fuel_type, engine_capacity, owner_name, owner_contact, created_at`

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row, "failed to find vehicle by ID")
}

func (r *VehicleReadStore) ListIDs(ctx context.Context, vehicleType *vehicle.VehicleType, fuelType *vehicle.FuelType) ([]uuid.UUID, error) {
	sql := `SELECT id FROM vehicles WHERE ($1::text IS NULL OR vehicle_type = $1) AND ($2::text IS NULL OR fuel_type = $2) ORDER BY registration_number`

	var vt, ft *string
	if vehicleType != nil {
		s := string(*vehicleType)
		vt = &s
	}
	if fuelType != nil {
		s := string(*fuelType)
		ft = &s
	}

	rows, err := r.db.Query(ctx, sql, vt, ft)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicle IDs", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle IDs", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner, failMsg string) (*vehicle.Vehicle, error) {
	var (
		id                      uuid.UUID
		registration            string
		vehicleTypeRaw, fuelRaw string
		engineCapacity          float64
		ownerName, ownerContact string
		createdAt               time.Time
	)
	if err := row.Scan(&id, &registration, &vehicleTypeRaw, &fuelRaw, &engineCapacity, &ownerName, &ownerContact, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(failMsg, err)
	}

	vehicleType, err := vehicle.NewVehicleType(vehicleTypeRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid vehicle type in row", err)
	}
	fuelType, err := vehicle.NewFuelType(fuelRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fuel type in row", err)
	}

	return vehicle.ReconstructVehicle(id, registration, vehicleType, fuelType, engineCapacity, ownerName, ownerContact, createdAt), nil
}
