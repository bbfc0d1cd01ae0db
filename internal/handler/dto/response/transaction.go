package response

import (
	"time"

	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type TransactionResponse struct {
	ID                 uuid.UUID `json:"id"`
	VehicleID          uuid.UUID `json:"vehicleId"`
	RegistrationNumber string    `json:"registrationNumber"`
	StationID          uuid.UUID `json:"stationId"`
	StationName        string    `json:"stationName"`
	FuelType           string    `json:"fuelType"`
	Amount             float64   `json:"amount"`
	QuotaAfter         float64   `json:"quotaAfter"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromTransactionView(view *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:                 view.ID,
		VehicleID:          view.VehicleID,
		RegistrationNumber: view.RegistrationNumber,
		StationID:          view.StationID,
		StationName:        view.StationName,
		FuelType:           view.FuelType,
		Amount:             view.Amount,
		QuotaAfter:         view.QuotaAfter,
		Status:             view.Status,
		CreatedAt:          view.CreatedAt,
	}
}

func FromTransactionViews(views []*queries.TransactionView) []*TransactionResponse {
	result := make([]*TransactionResponse, len(views))
	for i, view := range views {
		result[i] = FromTransactionView(view)
	}
	return result
}
