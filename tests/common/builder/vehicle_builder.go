//go:build unit || e2e

package builder

import (
	"time"

	domvehicle "fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID                 uuid.UUID
	RegistrationNumber string
	VehicleType        string
	FuelType           string
	EngineCapacity     float64
	OwnerName          string
	OwnerContact       string
	CreatedAt          time.Time
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:                 uuid.New(),
		RegistrationNumber: "CAB-1234",
		VehicleType:        "Car",
		FuelType:           "Petrol",
		EngineCapacity:     1500,
		OwnerName:          "Test Owner",
		OwnerContact:       "+94771234567",
		CreatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(b)
	return b
}

func (b *VehicleBuilder) BuildDomain() (*domvehicle.Vehicle, error) {
	vehicleType, err := domvehicle.NewVehicleType(b.VehicleType)
	if err != nil {
		return nil, err
	}
	fuelType, err := domvehicle.NewFuelType(b.FuelType)
	if err != nil {
		return nil, err
	}
	registration, err := domvehicle.NormalizeRegistration(b.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	return domvehicle.ReconstructVehicle(
		b.ID, registration, vehicleType, fuelType,
		b.EngineCapacity, b.OwnerName, b.OwnerContact, b.CreatedAt,
	), nil
}
