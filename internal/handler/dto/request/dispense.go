package request

import (
	"github.com/google/uuid"
)

// StationID is honored only for admin callers; operator tokens carry their
// station identity in the claims.
type DispenseRequest struct {
	VehicleID uuid.UUID  `json:"vehicle_id" binding:"required"`
	StationID *uuid.UUID `json:"station_id,omitempty"`
	FuelType  string     `json:"fuel_type" binding:"required"`
	Amount    float64    `json:"amount" binding:"required"`
}
