package dispense

import (
	"errors"

	"fuel-quota-service/internal/domain/station"
	"fuel-quota-service/internal/domain/vehicle"
)

var (
	ErrStationInactive     = errors.New("station is inactive")
	ErrFuelTypeUnsupported = errors.New("fuel type not supported")
	ErrAmountOutOfRange    = errors.New("amount out of range")
)

// Per-scan amount bounds in litres. The upper bound is a fixed anti-fraud
// ceiling independent of the vehicle's remaining quota.
const (
	MinAmountPerScan = 0.1
	MaxAmountPerScan = 100.0
)

// CheckCompatibility runs the stateless pre-debit rules, short-circuiting on
// the first failure: the station must be active, must carry the requested
// fuel type, the fuel type must match the vehicle, and the amount must be
// within the per-scan bounds. Amounts are never clamped to fit.
func CheckCompatibility(st *station.Station, v *vehicle.Vehicle, fuelType vehicle.FuelType, amount float64) error {
	if !st.IsActive() {
		return ErrStationInactive
	}
	if !st.SupportsFuel(fuelType) {
		return ErrFuelTypeUnsupported
	}
	if fuelType != v.FuelType() {
		return ErrFuelTypeUnsupported
	}
	if amount < MinAmountPerScan || amount > MaxAmountPerScan {
		return ErrAmountOutOfRange
	}
	return nil
}
