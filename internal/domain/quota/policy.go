package quota

import "fuel-quota-service/internal/domain/vehicle"

// Default monthly allocations in litres.
const (
	petrolCarQuota          = 60.0
	petrolMotorcycleQuota   = 20.0
	petrolThreeWheelerQuota = 40.0
	dieselCarQuota          = 80.0
	dieselCommercialQuota   = 200.0

	// Petrol cars above this engine capacity get a larger allowance.
	largeEngineCapacityCC = 1800.0
	largeEngineBonus      = 20.0
)

// Low-quota warning thresholds as a percentage of the allocation remaining.
const (
	LowQuotaThresholdPercent      = 20.0
	CriticalQuotaThresholdPercent = 10.0
)

// MonthlyAllocationFor returns the default allocation for a vehicle class.
// Unknown vehicle types fall back to the car figure for their fuel type.
func MonthlyAllocationFor(vehicleType vehicle.VehicleType, fuelType vehicle.FuelType, engineCapacity float64) float64 {
	switch fuelType {
	case vehicle.FuelDiesel:
		switch vehicleType {
		case vehicle.TypeBus, vehicle.TypeLorry:
			return dieselCommercialQuota
		default:
			return dieselCarQuota
		}
	default:
		switch vehicleType {
		case vehicle.TypeMotorcycle:
			return petrolMotorcycleQuota
		case vehicle.TypeThreeWheeler:
			return petrolThreeWheelerQuota
		case vehicle.TypeCar:
			if engineCapacity > largeEngineCapacityCC {
				return petrolCarQuota + largeEngineBonus
			}
			return petrolCarQuota
		default:
			return petrolCarQuota
		}
	}
}
