package response

import (
	"time"

	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuotaResponse struct {
	VehicleID           uuid.UUID `json:"vehicleId"`
	RegistrationNumber  string    `json:"registrationNumber"`
	VehicleType         string    `json:"vehicleType"`
	FuelType            string    `json:"fuelType"`
	PeriodStart         time.Time `json:"periodStart"`
	PeriodEnd           time.Time `json:"periodEnd"`
	AllocatedAmount     float64   `json:"allocatedAmount"`
	UsedAmount          float64   `json:"usedAmount"`
	RemainingAmount     float64   `json:"remainingAmount"`
	UsagePercentage     float64   `json:"usagePercentage"`
	RemainingPercentage float64   `json:"remainingPercentage"`
	WarningLevel        string    `json:"warningLevel"`
	ExpiringSoon        bool      `json:"expiringSoon"`
	Expired             bool      `json:"expired"`
}

func FromQuotaView(view *queries.QuotaView) *QuotaResponse {
	return &QuotaResponse{
		VehicleID:           view.VehicleID,
		RegistrationNumber:  view.RegistrationNumber,
		VehicleType:         view.VehicleType,
		FuelType:            view.FuelType,
		PeriodStart:         view.PeriodStart,
		PeriodEnd:           view.PeriodEnd,
		AllocatedAmount:     view.AllocatedAmount,
		UsedAmount:          view.UsedAmount,
		RemainingAmount:     view.RemainingAmount,
		UsagePercentage:     view.UsagePercentage,
		RemainingPercentage: view.RemainingPercentage,
		WarningLevel:        view.WarningLevel,
		ExpiringSoon:        view.ExpiringSoon,
		Expired:             view.Expired,
	}
}

type RolloverResponse struct {
	VehicleID       uuid.UUID `json:"vehicleId"`
	AllocatedAmount float64   `json:"allocatedAmount"`
	PeriodStart     time.Time `json:"periodStart"`
	PeriodEnd       time.Time `json:"periodEnd"`
}

type BulkAllocateResponse struct {
	AffectedVehicles int `json:"affectedVehicles"`
	FailedVehicles   int `json:"failedVehicles"`
}
