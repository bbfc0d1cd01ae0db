package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type QuotaView struct {
	VehicleID           uuid.UUID `json:"vehicle_id"`
	RegistrationNumber  string    `json:"registration_number"`
	VehicleType         string    `json:"vehicle_type"`
	FuelType            string    `json:"fuel_type"`
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
	AllocatedAmount     float64   `json:"allocated_amount"`
	UsedAmount          float64   `json:"used_amount"`
	RemainingAmount     float64   `json:"remaining_amount"`
	UsagePercentage     float64   `json:"usage_percentage"`
	RemainingPercentage float64   `json:"remaining_percentage"`
	WarningLevel        string    `json:"warning_level"` // none|low|critical
	ExpiringSoon        bool      `json:"expiring_soon"`
	Expired             bool      `json:"expired"`
}

// QuotaSnapshot is the raw allocation row joined with registry attributes;
// derived fields are computed against the caller's clock.
type QuotaSnapshot struct {
	VehicleID          uuid.UUID
	RegistrationNumber string
	VehicleType        string
	FuelType           string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	AllocatedAmount    float64
	UsedAmount         float64
}

type TransactionView struct {
	ID                 uuid.UUID `json:"id"`
	VehicleID          uuid.UUID `json:"vehicle_id"`
	RegistrationNumber string    `json:"registration_number"`
	StationID          uuid.UUID `json:"station_id"`
	StationName        string    `json:"station_name"`
	FuelType           string    `json:"fuel_type"`
	Amount             float64   `json:"amount"`
	QuotaAfter         float64   `json:"quota_after"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

type UtilizationReport struct {
	Month                 time.Time `json:"month"`
	VehicleCount          int       `json:"vehicle_count"`
	TotalAllocated        float64   `json:"total_allocated"`
	TotalUsed             float64   `json:"total_used"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
	FullyUtilizedCount    int       `json:"fully_utilized_count"`
	NeverUsedCount        int       `json:"never_used_count"`
	AverageUsedPerVehicle float64   `json:"average_used_per_vehicle"`
}
