package analytics

import (
	"time"

	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Record is one committed dispensing transaction flattened with the registry
// attributes the reports need. The engine only ever sees whole records.
type Record struct {
	TransactionID uuid.UUID
	VehicleID     uuid.UUID
	Registration  string
	VehicleType   string
	OwnerName     string
	StationID     uuid.UUID
	StationName   string
	FuelType      vehicle.FuelType
	Amount        float64
	Timestamp     time.Time
}

type ConsumptionReport struct {
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	TotalPetrol       float64   `json:"total_petrol"`
	TotalDiesel       float64   `json:"total_diesel"`
	TotalFuel         float64   `json:"total_fuel"`
	TransactionCount  int       `json:"transaction_count"`
	AveragePerTx      float64   `json:"average_per_transaction"`
	MostActiveStation string    `json:"most_active_station"`
	PeakDay           *DayTotal `json:"peak_day,omitempty"`
}

type DayTotal struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type StationStats struct {
	StationID        uuid.UUID  `json:"station_id"`
	StationName      string     `json:"station_name"`
	TotalPetrol      float64    `json:"total_petrol"`
	TotalDiesel      float64    `json:"total_diesel"`
	TotalDispensed   float64    `json:"total_dispensed"`
	TransactionCount int        `json:"transaction_count"`
	PeakDay          *DayTotal  `json:"peak_day,omitempty"`
	PeakHour         *HourCount `json:"peak_hour,omitempty"`
}

type StationPerformanceReport struct {
	PeriodStart        time.Time      `json:"period_start"`
	PeriodEnd          time.Time      `json:"period_end"`
	ActiveStationCount int            `json:"active_station_count"`
	TotalTransactions  int            `json:"total_transactions"`
	TotalFuelDispensed float64        `json:"total_fuel_dispensed"`
	TopStation         string         `json:"top_station"`
	LeastActiveStation string         `json:"least_active_station"`
	AvgTxPerStation    float64        `json:"avg_transactions_per_station"`
	AvgFuelPerStation  float64        `json:"avg_fuel_per_station"`
	Stations           []StationStats `json:"stations"`
}

type TopConsumer struct {
	VehicleID         uuid.UUID `json:"vehicle_id"`
	Registration      string    `json:"registration_number"`
	VehicleType       string    `json:"vehicle_type"`
	FuelType          string    `json:"fuel_type"`
	OwnerName         string    `json:"owner_name"`
	TotalConsumed     float64   `json:"total_fuel_consumed"`
	TransactionCount  int       `json:"transaction_count"`
	AveragePerTx      float64   `json:"average_per_transaction"`
	LastTransactionAt time.Time `json:"last_transaction_at"`
}

type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

func (b Bucket) IsValid() bool {
	switch b {
	case BucketDay, BucketWeek, BucketMonth:
		return true
	default:
		return false
	}
}

type TrendPoint struct {
	BucketStart      time.Time `json:"bucket_start"`
	Petrol           float64   `json:"petrol"`
	Diesel           float64   `json:"diesel"`
	Total            float64   `json:"total"`
	TransactionCount int       `json:"transaction_count"`
	UniqueVehicles   int       `json:"unique_vehicles"`
}
