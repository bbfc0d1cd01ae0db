package dispense

import (
	"errors"
	"time"

	"fuel-quota-service/internal/domain/vehicle"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid transaction status")

type Status string

const (
	// StatusPending means the debit is committed but the owner notification
	// has not been acknowledged yet.
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Transaction is one audit-ledger entry. Records are append-only; the only
// permitted mutation is the pending -> completed status transition performed
// when the notification collaborator acknowledges delivery.
type Transaction struct {
	id             uuid.UUID
	vehicleID      uuid.UUID
	stationID      uuid.UUID
	fuelType       vehicle.FuelType
	amount         float64
	quotaBefore    float64
	quotaAfter     float64
	status         Status
	idempotencyKey uuid.UUID
	createdAt      time.Time
}

func NewTransaction(
	vehicleID, stationID uuid.UUID,
	fuelType vehicle.FuelType,
	amount, quotaBefore, quotaAfter float64,
	idempotencyKey uuid.UUID,
	now time.Time,
) *Transaction {
	return &Transaction{
		id:             uuid.New(),
		vehicleID:      vehicleID,
		stationID:      stationID,
		fuelType:       fuelType,
		amount:         amount,
		quotaBefore:    quotaBefore,
		quotaAfter:     quotaAfter,
		status:         StatusPending,
		idempotencyKey: idempotencyKey,
		createdAt:      now,
	}
}

func (t *Transaction) ID() uuid.UUID              { return t.id }
func (t *Transaction) VehicleID() uuid.UUID       { return t.vehicleID }
func (t *Transaction) StationID() uuid.UUID       { return t.stationID }
func (t *Transaction) FuelType() vehicle.FuelType { return t.fuelType }
func (t *Transaction) Amount() float64            { return t.amount }
func (t *Transaction) QuotaBefore() float64       { return t.quotaBefore }
func (t *Transaction) QuotaAfter() float64        { return t.quotaAfter }
func (t *Transaction) Status() Status             { return t.status }
func (t *Transaction) IdempotencyKey() uuid.UUID  { return t.idempotencyKey }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }
