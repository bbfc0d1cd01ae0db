package station

import (
	"time"

	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Station is owned by the external station registry; the core reads it for
// compatibility checks only.
type Station struct {
	id        uuid.UUID
	name      string
	city      string
	hasPetrol bool
	hasDiesel bool
	active    bool
	createdAt time.Time
}

func ReconstructStation(
	id uuid.UUID,
	name, city string,
	hasPetrol, hasDiesel, active bool,
	createdAt time.Time,
) *Station {
	return &Station{
		id:        id,
		name:      name,
		city:      city,
		hasPetrol: hasPetrol,
		hasDiesel: hasDiesel,
		active:    active,
		createdAt: createdAt,
	}
}

func (s *Station) SupportsFuel(ft vehicle.FuelType) bool {
	switch ft {
	case vehicle.FuelPetrol:
		return s.hasPetrol
	case vehicle.FuelDiesel:
		return s.hasDiesel
	default:
		return false
	}
}

func (s *Station) ID() uuid.UUID        { return s.id }
func (s *Station) Name() string         { return s.name }
func (s *Station) City() string         { return s.city }
func (s *Station) HasPetrol() bool      { return s.hasPetrol }
func (s *Station) HasDiesel() bool      { return s.hasDiesel }
func (s *Station) IsActive() bool       { return s.active }
func (s *Station) CreatedAt() time.Time { return s.createdAt }
