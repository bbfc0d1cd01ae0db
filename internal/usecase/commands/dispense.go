package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/dispense"
	"fuel-quota-service/internal/domain/quota"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/shared"

	"github.com/google/uuid"
)

const dispenseEndpoint = "POST /api/dispense"

const idempotencyKeyTTL = 24 * time.Hour

type DispenseRequest struct {
	VehicleID uuid.UUID        `json:"vehicle_id"`
	StationID uuid.UUID        `json:"station_id"`
	FuelType  vehicle.FuelType `json:"fuel_type"`
	Amount    float64          `json:"amount"`
}

type DispenseResult struct {
	TransactionID  uuid.UUID
	RemainingQuota float64
	Replayed       bool
}

type DispenseCommands interface {
	RecordDispense(ctx context.Context, req DispenseRequest, idempotencyKey uuid.UUID) (*DispenseResult, error)
	MarkDelivered(ctx context.Context, transactionID uuid.UUID) error
}

type dispenseUseCaseImpl struct {
	vehicles        VehicleRegistry
	stations        StationRegistry
	idempotencyRepo IdempotencyRepository
	transactions    TransactionReader
	uow             shared.UnitOfWork
	sink            AnalyticsSink
	invalidator     QuotaCacheInvalidator
	clock           clock.Clock
}

func NewDispenseUseCase(
	vehicles VehicleRegistry,
	stations StationRegistry,
	idempotencyRepo IdempotencyRepository,
	transactions TransactionReader,
	uow shared.UnitOfWork,
	sink AnalyticsSink,
	invalidator QuotaCacheInvalidator,
	clock clock.Clock,
) DispenseCommands {
	return &dispenseUseCaseImpl{
		vehicles:        vehicles,
		stations:        stations,
		idempotencyRepo: idempotencyRepo,
		transactions:    transactions,
		uow:             uow,
		sink:            sink,
		invalidator:     invalidator,
		clock:           clock,
	}
}

// RecordDispense validates a fuel-dispensing event against the station and
// the vehicle's allocation, debits the ledger, and appends the audit record
// as one failure-atomic unit. Retries with the same idempotency key replay
// the original committed result without a second debit.
func (u *dispenseUseCaseImpl) RecordDispense(
	ctx context.Context,
	req DispenseRequest,
	idempotencyKey uuid.UUID,
) (*DispenseResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	requestHash := calculateRequestHash(req)
	expiresAt := u.clock.Now().Add(idempotencyKeyTTL)

	replayed, err := u.handleIdempotency(ctx, idempotencyKey, req.StationID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	return u.recordNewDispense(ctx, req, idempotencyKey)
}

func (u *dispenseUseCaseImpl) handleIdempotency(
	ctx context.Context,
	key, stationID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*DispenseResult, error) {
	inserted, err := u.idempotencyRepo.TryInsert(ctx, key, stationID, dispenseEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, markStorageErr(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := u.idempotencyRepo.Get(ctx, key, stationID)
	if err != nil {
		return nil, markStorageErr(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case IdempotencyCompleted:
		if existing.ResultTransactionID == nil {
			return nil, errs.New("completed idempotency key missing result transaction")
		}
		snapshot, err := u.transactions.FindByID(ctx, *existing.ResultTransactionID)
		if err != nil {
			return nil, markStorageErr(err, errs.ErrIdempotencyCheckFailed)
		}
		return &DispenseResult{
			TransactionID:  snapshot.ID,
			RemainingQuota: snapshot.QuotaAfter,
			Replayed:       true,
		}, nil

	case IdempotencyProcessing:
		if existing.RequestHash != requestHash {
			return nil, errs.ErrDuplicateSubmission
		}
		return nil, errs.ErrDispenseInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (u *dispenseUseCaseImpl) recordNewDispense(
	ctx context.Context,
	req DispenseRequest,
	idempotencyKey uuid.UUID,
) (result *DispenseResult, retErr error) {
	// The key was claimed in handleIdempotency. Anything short of a commit
	// must give it back, or a retry with the same key would sit behind
	// ErrDispenseInProgress until the claim expires.
	defer func() {
		if retErr != nil {
			u.releaseClaim(ctx, idempotencyKey, req.StationID)
		}
	}()

	vehicleEntity, err := u.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, markStorageErr(err, errs.ErrVehicleNotFound)
	}

	stationEntity, err := u.stations.FindByID(ctx, req.StationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrStationNotFound
		}
		return nil, markStorageErr(err, errs.ErrStationNotFound)
	}

	if err := dispense.CheckCompatibility(stationEntity, vehicleEntity, req.FuelType, req.Amount); err != nil {
		return nil, mapGuardErr(err)
	}

	now := u.clock.Now()
	var txn *dispense.Transaction

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Quotas().LockVehicle(ctx, req.VehicleID); err != nil {
			return err
		}

		alloc, err := tx.Quotas().FindActiveByVehicle(ctx, req.VehicleID, now)
		if err != nil {
			return err
		}

		quotaBefore := alloc.Remaining()
		remaining, err := alloc.Debit(now, req.Amount)
		if err != nil {
			return err
		}

		if err := tx.Quotas().UpdateUsage(ctx, alloc); err != nil {
			return err
		}

		txn = dispense.NewTransaction(
			vehicleEntity.ID(),
			stationEntity.ID(),
			req.FuelType,
			req.Amount,
			quotaBefore,
			remaining,
			idempotencyKey,
			now,
		)
		if err := tx.Transactions().Create(ctx, txn); err != nil {
			return err
		}

		if err := u.enqueueNotifications(ctx, tx, vehicleEntity, alloc, txn); err != nil {
			return err
		}

		return tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, req.StationID, txn.ID())
	})
	if err != nil {
		return nil, mapLedgerErr(err)
	}

	// Committed: feed the aggregates and drop the cached quota view.
	u.sink.Apply(analytics.Record{
		TransactionID: txn.ID(),
		VehicleID:     vehicleEntity.ID(),
		Registration:  vehicleEntity.RegistrationNumber(),
		VehicleType:   vehicleEntity.VehicleType().String(),
		OwnerName:     vehicleEntity.OwnerName(),
		StationID:     stationEntity.ID(),
		StationName:   stationEntity.Name(),
		FuelType:      txn.FuelType(),
		Amount:        txn.Amount(),
		Timestamp:     txn.CreatedAt(),
	})
	u.invalidator.Invalidate(vehicleEntity.ID())

	return &DispenseResult{
		TransactionID:  txn.ID(),
		RemainingQuota: txn.QuotaAfter(),
	}, nil
}

// MarkDelivered performs the pending -> completed transition when the
// notification collaborator acknowledges delivery for a transaction.
func (u *dispenseUseCaseImpl) MarkDelivered(ctx context.Context, transactionID uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Transactions().MarkCompleted(ctx, transactionID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrTransactionNotFound
		}
		return mapLedgerErr(err)
	}
	return nil
}

func (u *dispenseUseCaseImpl) enqueueNotifications(
	ctx context.Context,
	tx shared.Tx,
	v *vehicle.Vehicle,
	alloc *quota.Allocation,
	txn *dispense.Transaction,
) error {
	now := u.clock.Now()

	receipt, err := json.Marshal(map[string]any{
		"transaction_id":      txn.ID(),
		"registration_number": v.RegistrationNumber(),
		"owner_contact":       v.OwnerContact(),
		"fuel_type":           txn.FuelType(),
		"amount":              txn.Amount(),
		"remaining_quota":     txn.QuotaAfter(),
	})
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, "sms", "fuel_dispensed", receipt, now); err != nil {
		return err
	}

	// A warning fires only on the debit that crosses the threshold.
	prevPct := (alloc.Remaining() + txn.Amount()) / alloc.AllocatedAmount() * 100
	currPct := alloc.RemainingPercentage()

	topic := ""
	switch {
	case currPct <= quota.CriticalQuotaThresholdPercent && prevPct > quota.CriticalQuotaThresholdPercent:
		topic = "critical_quota_warning"
	case currPct <= quota.LowQuotaThresholdPercent && prevPct > quota.LowQuotaThresholdPercent:
		topic = "low_quota_warning"
	}
	if topic == "" {
		return nil
	}

	warning, err := json.Marshal(map[string]any{
		"registration_number": v.RegistrationNumber(),
		"owner_contact":       v.OwnerContact(),
		"fuel_type":           alloc.FuelType(),
		"remaining_quota":     alloc.Remaining(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "sms", topic, warning, now)
}

// releaseClaim frees a claimed idempotency key after a failed attempt so the
// caller can retry with the same key. Best effort: a row left behind is
// reclaimed by TryInsert once it expires.
func (u *dispenseUseCaseImpl) releaseClaim(ctx context.Context, key, stationID uuid.UUID) {
	_ = u.idempotencyRepo.Delete(context.WithoutCancel(ctx), key, stationID)
}

func mapGuardErr(err error) error {
	switch {
	case errs.Is(err, dispense.ErrStationInactive):
		return errs.ErrStationInactive
	case errs.Is(err, dispense.ErrFuelTypeUnsupported):
		return errs.ErrFuelTypeUnsupported
	case errs.Is(err, dispense.ErrAmountOutOfRange):
		return errs.ErrAmountOutOfRange
	default:
		return err
	}
}

func mapLedgerErr(err error) error {
	switch {
	case errs.Is(err, quota.ErrInsufficientQuota):
		return errs.ErrInsufficientQuota
	case errs.Is(err, quota.ErrQuotaExpired):
		return errs.ErrQuotaExpired
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrQuotaNotFound
	case infra.IsKind(err, infra.KindSerialization):
		return errs.Mark(err, errs.ErrConcurrencyConflict)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrStorageUnavailable)
	default:
		return err
	}
}

func markStorageErr(err error, fallback error) error {
	if infra.IsKind(err, infra.KindUnavailable) {
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return errs.Mark(err, fallback)
}

func calculateRequestHash(req DispenseRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
