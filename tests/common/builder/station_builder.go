//go:build unit || e2e

package builder

import (
	"time"

	domstation "fuel-quota-service/internal/domain/station"

	"github.com/google/uuid"
)

type StationBuilder struct {
	ID        uuid.UUID
	Name      string
	City      string
	HasPetrol bool
	HasDiesel bool
	Active    bool
	CreatedAt time.Time
}

func NewStationBuilder() *StationBuilder {
	return &StationBuilder{
		ID:        uuid.New(),
		Name:      "Colombo Central",
		City:      "Colombo",
		HasPetrol: true,
		HasDiesel: true,
		Active:    true,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *StationBuilder) With(mutate func(*StationBuilder)) *StationBuilder {
	mutate(b)
	return b
}

func (b *StationBuilder) BuildDomain() *domstation.Station {
	return domstation.ReconstructStation(
		b.ID, b.Name, b.City, b.HasPetrol, b.HasDiesel, b.Active, b.CreatedAt,
	)
}
