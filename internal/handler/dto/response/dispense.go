package response

import (
	"fuel-quota-service/internal/usecase/commands"

	"github.com/google/uuid"
)

type DispenseResponse struct {
	TransactionID  uuid.UUID `json:"transactionId"`
	RemainingQuota float64   `json:"remainingQuota"`
	Replayed       bool      `json:"replayed"`
}

func FromDispenseResult(result *commands.DispenseResult) *DispenseResponse {
	return &DispenseResponse{
		TransactionID:  result.TransactionID,
		RemainingQuota: result.RemainingQuota,
		Replayed:       result.Replayed,
	}
}
