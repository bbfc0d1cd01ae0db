package vehicle

import "errors"

var (
	ErrInvalidFuelType    = errors.New("invalid fuel type")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
)

type FuelType string

const (
	FuelPetrol FuelType = "Petrol"
	FuelDiesel FuelType = "Diesel"
)

func (f FuelType) String() string {
	return string(f)
}

func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel:
		return true
	default:
		return false
	}
}

func NewFuelType(s string) (FuelType, error) {
	ft := FuelType(s)
	if !ft.IsValid() {
		return "", ErrInvalidFuelType
	}
	return ft, nil
}

type VehicleType string

const (
	TypeCar          VehicleType = "Car"
	TypeMotorcycle   VehicleType = "Motorcycle"
	TypeThreeWheeler VehicleType = "Three Wheeler"
	TypeBus          VehicleType = "Bus"
	TypeLorry        VehicleType = "Lorry"
)

func (v VehicleType) String() string {
	return string(v)
}

func (v VehicleType) IsValid() bool {
	switch v {
	case TypeCar, TypeMotorcycle, TypeThreeWheeler, TypeBus, TypeLorry:
		return true
	default:
		return false
	}
}

func NewVehicleType(s string) (VehicleType, error) {
	vt := VehicleType(s)
	if !vt.IsValid() {
		return "", ErrInvalidVehicleType
	}
	return vt, nil
}
