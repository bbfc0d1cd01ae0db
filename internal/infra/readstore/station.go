package readstore

import (
	"context"
	"time"

	"fuel-quota-service/internal/domain/station"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type StationReadStore struct {
	db db.DBTX
}

func NewStationReadStore(dbtx db.DBTX) *StationReadStore {
	return &StationReadStore{db: dbtx}
}

const findStationSQL = `
SELECT id, name, city, has_petrol, has_diesel, is_active, created_at
FROM fuel_stations
WHERE id = $1`

func (r *StationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*station.Station, error) {
	row := r.db.QueryRow(ctx, findStationSQL, id)

	var (
		sID                  uuid.UUID
		name, city           string
		hasPetrol, hasDiesel bool
		active               bool
		createdAt            time.Time
	)
	if err := row.Scan(&sID, &name, &city, &hasPetrol, &hasDiesel, &active, &createdAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("station not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find station by ID", err)
	}

	return station.ReconstructStation(sID, name, city, hasPetrol, hasDiesel, active, createdAt), nil
}
