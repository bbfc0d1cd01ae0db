//go:build unit || e2e

package builder

import (
	"time"

	"fuel-quota-service/internal/analytics"
	domvehicle "fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

// RecordBuilder produces committed-transaction records for analytics tests.
type RecordBuilder struct {
	TransactionID uuid.UUID
	VehicleID     uuid.UUID
	Registration  string
	VehicleType   string
	OwnerName     string
	StationID     uuid.UUID
	StationName   string
	FuelType      domvehicle.FuelType
	Amount        float64
	Timestamp     time.Time
}

func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		TransactionID: uuid.New(),
		VehicleID:     uuid.New(),
		Registration:  "CAB-1234",
		VehicleType:   "Car",
		OwnerName:     "Test Owner",
		StationID:     uuid.New(),
		StationName:   "Colombo Central",
		FuelType:      domvehicle.FuelPetrol,
		Amount:        10,
		Timestamp:     time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC),
	}
}

func (b *RecordBuilder) With(mutate func(*RecordBuilder)) *RecordBuilder {
	mutate(b)
	return b
}

func (b *RecordBuilder) Build() analytics.Record {
	return analytics.Record{
		TransactionID: b.TransactionID,
		VehicleID:     b.VehicleID,
		Registration:  b.Registration,
		VehicleType:   b.VehicleType,
		OwnerName:     b.OwnerName,
		StationID:     b.StationID,
		StationName:   b.StationName,
		FuelType:      b.FuelType,
		Amount:        b.Amount,
		Timestamp:     b.Timestamp,
	}
}
