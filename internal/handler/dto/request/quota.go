package request

// RolloverRequest optionally overrides the policy-derived monthly amount.
type RolloverRequest struct {
	Amount *float64 `json:"amount,omitempty"`
}

type BulkAllocateRequest struct {
	VehicleType *string  `json:"vehicle_type,omitempty"`
	FuelType    *string  `json:"fuel_type,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}
