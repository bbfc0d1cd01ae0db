package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRegistrationNumber = errors.New("invalid registration number")

// Vehicle is owned by the external vehicle registry; the core only ever
// reconstructs it from persisted state and never mutates it.
type Vehicle struct {
	id                 uuid.UUID
	registrationNumber string
	vehicleType        VehicleType
	fuelType           FuelType
	engineCapacity     float64
	ownerName          string
	ownerContact       string
	createdAt          time.Time
}

func ReconstructVehicle(
	id uuid.UUID,
	registrationNumber string,
	vehicleType VehicleType,
	fuelType FuelType,
	engineCapacity float64,
	ownerName, ownerContact string,
	createdAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:                 id,
		registrationNumber: registrationNumber,
		vehicleType:        vehicleType,
		fuelType:           fuelType,
		engineCapacity:     engineCapacity,
		ownerName:          ownerName,
		ownerContact:       ownerContact,
		createdAt:          createdAt,
	}
}

// NormalizeRegistration maps operator input (scanned or hand-typed) to the
// canonical registration format before a registry lookup.
func NormalizeRegistration(s string) (string, error) {
	reg := strings.ToUpper(strings.TrimSpace(s))
	if len(reg) < 3 || len(reg) > 20 {
		return "", ErrInvalidRegistrationNumber
	}
	return reg, nil
}

func (v *Vehicle) ID() uuid.UUID              { return v.id }
func (v *Vehicle) RegistrationNumber() string { return v.registrationNumber }
func (v *Vehicle) VehicleType() VehicleType   { return v.vehicleType }
func (v *Vehicle) FuelType() FuelType         { return v.fuelType }
func (v *Vehicle) EngineCapacity() float64    { return v.engineCapacity }
func (v *Vehicle) OwnerName() string          { return v.ownerName }
func (v *Vehicle) OwnerContact() string       { return v.ownerContact }
func (v *Vehicle) CreatedAt() time.Time       { return v.createdAt }
