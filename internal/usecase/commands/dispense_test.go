//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fuel-quota-service/internal/domain/dispense"
	"fuel-quota-service/internal/domain/quota"
	"fuel-quota-service/internal/domain/station"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/shared"
	"fuel-quota-service/tests/common/builder"
	commandsmock "fuel-quota-service/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeLedger is an in-memory stand-in for the transactional ledger. All
// writes are staged per transaction and applied only when the unit of work
// commits, and LockVehicle holds a real mutex until the transaction ends so
// concurrent debits serialize the way the advisory lock makes them.
type fakeLedger struct {
	mu sync.Mutex

	hasAlloc    bool
	fuelType    vehicle.FuelType
	periodStart time.Time
	periodEnd   time.Time
	allocated   float64
	used        float64

	withinErr            error
	findErr              error
	markCompletedMissing bool

	withinCalls atomic.Int32

	transactions     []*dispense.Transaction
	jobs             []fakeJob
	completedResults []uuid.UUID
	completedTxIDs   []uuid.UUID
}

type fakeJob struct {
	kind  string
	topic string
}

func newFakeLedger(allocated, used float64) *fakeLedger {
	return &fakeLedger{
		hasAlloc:    true,
		fuelType:    vehicle.FuelPetrol,
		periodStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		periodEnd:   time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC),
		allocated:   allocated,
		used:        used,
	}
}

func (l *fakeLedger) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	if l.withinErr != nil {
		return l.withinErr
	}
	l.withinCalls.Add(1)

	tx := &fakeTx{l: l}
	err := fn(ctx, tx)
	if err == nil {
		if tx.usedAfter != nil {
			l.used = *tx.usedAfter
		}
		if tx.replaced != nil {
			l.hasAlloc = true
			l.fuelType = tx.replaced.FuelType()
			l.periodStart = tx.replaced.Period().Start()
			l.periodEnd = tx.replaced.Period().End()
			l.allocated = tx.replaced.AllocatedAmount()
			l.used = tx.replaced.UsedAmount()
		}
		l.transactions = append(l.transactions, tx.staged...)
		l.jobs = append(l.jobs, tx.stagedJobs...)
		if tx.completedResult != nil {
			l.completedResults = append(l.completedResults, *tx.completedResult)
		}
		l.completedTxIDs = append(l.completedTxIDs, tx.markedCompleted...)
	}
	if tx.held {
		l.mu.Unlock()
	}
	return err
}

type fakeTx struct {
	l    *fakeLedger
	held bool

	usedAfter       *float64
	replaced        *quota.Allocation
	staged          []*dispense.Transaction
	stagedJobs      []fakeJob
	completedResult *uuid.UUID
	markedCompleted []uuid.UUID
}

func (t *fakeTx) Quotas() shared.QuotaRepository               { return t }
func (t *fakeTx) Transactions() shared.TransactionRepository   { return t }
func (t *fakeTx) Idempotency() shared.IdempotencyWriter        { return t }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t }

func (t *fakeTx) LockVehicle(_ context.Context, _ uuid.UUID) error {
	t.l.mu.Lock()
	t.held = true
	return nil
}

func (t *fakeTx) FindActiveByVehicle(_ context.Context, vehicleID uuid.UUID, now time.Time) (*quota.Allocation, error) {
	if t.l.findErr != nil {
		return nil, t.l.findErr
	}
	if !t.l.hasAlloc || t.l.periodStart.After(now) {
		return nil, infra.WrapRepoErr("fuel quota not found", errors.New("no rows"), infra.KindNotFound)
	}
	period, err := quota.NewPeriod(t.l.periodStart, t.l.periodEnd)
	if err != nil {
		return nil, err
	}
	return quota.ReconstructAllocation(
		uuid.New(), vehicleID, t.l.fuelType, period,
		t.l.allocated, t.l.used, t.l.periodStart, t.l.periodStart,
	)
}

func (t *fakeTx) UpdateUsage(_ context.Context, alloc *quota.Allocation) error {
	used := alloc.UsedAmount()
	t.usedAfter = &used
	return nil
}

func (t *fakeTx) Replace(_ context.Context, alloc *quota.Allocation) error {
	t.replaced = alloc
	return nil
}

func (t *fakeTx) Create(_ context.Context, txn *dispense.Transaction) error {
	t.staged = append(t.staged, txn)
	return nil
}

func (t *fakeTx) MarkCompleted(_ context.Context, id uuid.UUID) error {
	if t.l.markCompletedMissing {
		return infra.WrapRepoErr("fuel transaction not found", errors.New("no rows"), infra.KindNotFound)
	}
	t.markedCompleted = append(t.markedCompleted, id)
	return nil
}

func (t *fakeTx) UpdateStatusCompleted(_ context.Context, _, _ uuid.UUID, resultTransactionID uuid.UUID) error {
	t.completedResult = &resultTransactionID
	return nil
}

func (t *fakeTx) CreateJob(_ context.Context, kind, topic string, _ json.RawMessage, _ time.Time) error {
	t.stagedJobs = append(t.stagedJobs, fakeJob{kind: kind, topic: topic})
	return nil
}

type dispenseFixture struct {
	ctrl        *gomock.Controller
	vehicles    *commandsmock.MockVehicleRegistry
	stations    *commandsmock.MockStationRegistry
	idempotency *commandsmock.MockIdempotencyRepository
	reader      *commandsmock.MockTransactionReader
	sink        *commandsmock.MockAnalyticsSink
	invalidator *commandsmock.MockQuotaCacheInvalidator
	ledger      *fakeLedger
	clock       *clock.MockClock
	uc          commands.DispenseCommands

	vehicleEntity *vehicle.Vehicle
	stationEntity *station.Station
}

func newDispenseFixture(t *testing.T, ledger *fakeLedger) *dispenseFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	vehicleEntity, err := builder.NewVehicleBuilder().BuildDomain()
	require.NoError(t, err)
	stationEntity := builder.NewStationBuilder().BuildDomain()

	f := &dispenseFixture{
		ctrl:          ctrl,
		vehicles:      commandsmock.NewMockVehicleRegistry(ctrl),
		stations:      commandsmock.NewMockStationRegistry(ctrl),
		idempotency:   commandsmock.NewMockIdempotencyRepository(ctrl),
		reader:        commandsmock.NewMockTransactionReader(ctrl),
		sink:          commandsmock.NewMockAnalyticsSink(ctrl),
		invalidator:   commandsmock.NewMockQuotaCacheInvalidator(ctrl),
		ledger:        ledger,
		clock:         clock.NewMockClock(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)),
		vehicleEntity: vehicleEntity,
		stationEntity: stationEntity,
	}
	f.uc = commands.NewDispenseUseCase(
		f.vehicles, f.stations, f.idempotency, f.reader,
		f.ledger, f.sink, f.invalidator, f.clock,
	)
	return f
}

func (f *dispenseFixture) request(amount float64) commands.DispenseRequest {
	return commands.DispenseRequest{
		VehicleID: f.vehicleEntity.ID(),
		StationID: f.stationEntity.ID(),
		FuelType:  vehicle.FuelPetrol,
		Amount:    amount,
	}
}

func (f *dispenseFixture) expectRegistries() {
	f.vehicles.EXPECT().FindByID(gomock.Any(), f.vehicleEntity.ID()).Return(f.vehicleEntity, nil).AnyTimes()
	f.stations.EXPECT().FindByID(gomock.Any(), f.stationEntity.ID()).Return(f.stationEntity, nil).AnyTimes()
}

func (f *dispenseFixture) expectFreshKey() {
	f.idempotency.EXPECT().
		TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).AnyTimes()
}

func (f *dispenseFixture) expectRelease() {
	f.idempotency.EXPECT().
		Delete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()
}

func requestHash(req commands.DispenseRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func TestRecordDispense(t *testing.T) {
	ctx := context.Background()

	t.Run("successful dispense debits and records atomically", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectRegistries()
		f.expectFreshKey()
		f.sink.EXPECT().Apply(gomock.Any()).Times(1)
		f.invalidator.EXPECT().Invalidate(f.vehicleEntity.ID()).Times(1)

		result, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		require.NoError(t, err)

		assert.False(t, result.Replayed)
		assert.Equal(t, 50.0, result.RemainingQuota)
		assert.Equal(t, 10.0, f.ledger.used)

		require.Len(t, f.ledger.transactions, 1)
		txn := f.ledger.transactions[0]
		assert.Equal(t, result.TransactionID, txn.ID())
		assert.Equal(t, 60.0, txn.QuotaBefore())
		assert.Equal(t, 50.0, txn.QuotaAfter())
		assert.Equal(t, dispense.StatusPending, txn.Status())

		require.Len(t, f.ledger.jobs, 1)
		assert.Equal(t, fakeJob{kind: "sms", topic: "fuel_dispensed"}, f.ledger.jobs[0])

		require.Len(t, f.ledger.completedResults, 1)
		assert.Equal(t, txn.ID(), f.ledger.completedResults[0])
	})

	t.Run("missing idempotency key is rejected up front", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.Nil)
		assert.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
		assert.Zero(t, f.ledger.withinCalls.Load())
	})

	t.Run("completed key replays the original result without a debit", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 22.5))
		key := uuid.New()
		txID := uuid.New()
		req := f.request(10)

		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), key, req.StationID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		f.idempotency.EXPECT().Get(gomock.Any(), key, req.StationID).Return(&commands.IdempotencyRecord{
			Key:                 key,
			StationID:           req.StationID,
			Status:              commands.IdempotencyCompleted,
			ResultTransactionID: &txID,
		}, nil)
		f.reader.EXPECT().FindByID(gomock.Any(), txID).Return(&commands.TransactionSnapshot{
			ID:         txID,
			QuotaAfter: 37.5,
		}, nil)

		result, err := f.uc.RecordDispense(ctx, req, key)
		require.NoError(t, err)

		assert.True(t, result.Replayed)
		assert.Equal(t, txID, result.TransactionID)
		assert.Equal(t, 37.5, result.RemainingQuota)
		assert.Zero(t, f.ledger.withinCalls.Load())
		assert.Equal(t, 22.5, f.ledger.used)
	})

	t.Run("in-flight key with the same payload", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		key := uuid.New()
		req := f.request(10)

		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), key, req.StationID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		f.idempotency.EXPECT().Get(gomock.Any(), key, req.StationID).Return(&commands.IdempotencyRecord{
			Key:         key,
			StationID:   req.StationID,
			Status:      commands.IdempotencyProcessing,
			RequestHash: requestHash(req),
		}, nil)

		_, err := f.uc.RecordDispense(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrDispenseInProgress)
	})

	t.Run("reused key with a different payload", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		key := uuid.New()
		req := f.request(10)

		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), key, req.StationID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		f.idempotency.EXPECT().Get(gomock.Any(), key, req.StationID).Return(&commands.IdempotencyRecord{
			Key:         key,
			StationID:   req.StationID,
			Status:      commands.IdempotencyProcessing,
			RequestHash: requestHash(f.request(99)),
		}, nil)

		_, err := f.uc.RecordDispense(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrDuplicateSubmission)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectFreshKey()
		f.expectRelease()
		f.vehicles.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("vehicle not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		assert.ErrorIs(t, err, errs.ErrVehicleNotFound)
	})

	t.Run("inactive station aborts before the ledger", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectFreshKey()
		f.expectRelease()
		f.vehicles.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(f.vehicleEntity, nil)
		inactive := builder.NewStationBuilder().With(func(b *builder.StationBuilder) {
			b.ID = f.stationEntity.ID()
			b.Active = false
		}).BuildDomain()
		f.stations.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		assert.ErrorIs(t, err, errs.ErrStationInactive)
		assert.Zero(t, f.ledger.withinCalls.Load())
	})

	t.Run("fuel type mismatching the vehicle", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectRegistries()
		f.expectFreshKey()
		f.expectRelease()

		req := f.request(10)
		req.FuelType = vehicle.FuelDiesel

		_, err := f.uc.RecordDispense(ctx, req, uuid.New())
		assert.ErrorIs(t, err, errs.ErrFuelTypeUnsupported)
		assert.Zero(t, f.ledger.withinCalls.Load())
	})

	t.Run("insufficient quota commits nothing", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 55))
		f.expectRegistries()
		f.expectFreshKey()
		f.expectRelease()

		_, err := f.uc.RecordDispense(ctx, f.request(5.5), uuid.New())
		assert.ErrorIs(t, err, errs.ErrInsufficientQuota)

		assert.Equal(t, 55.0, f.ledger.used)
		assert.Empty(t, f.ledger.transactions)
		assert.Empty(t, f.ledger.jobs)
		assert.Empty(t, f.ledger.completedResults)
	})

	t.Run("expired allocation", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectRegistries()
		f.expectFreshKey()
		f.expectRelease()
		f.clock.Set(time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC))

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		assert.ErrorIs(t, err, errs.ErrQuotaExpired)
		assert.Equal(t, 0.0, f.ledger.used)
	})

	t.Run("no allocation for the vehicle", func(t *testing.T) {
		ledger := newFakeLedger(60, 0)
		ledger.hasAlloc = false
		f := newDispenseFixture(t, ledger)
		f.expectRegistries()
		f.expectFreshKey()
		f.expectRelease()

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		assert.ErrorIs(t, err, errs.ErrQuotaNotFound)
	})

	t.Run("serialization retry exhaustion surfaces a conflict", func(t *testing.T) {
		ledger := newFakeLedger(60, 0)
		ledger.withinErr = infra.WrapRepoErr("transaction failed after 3 retries", errors.New("40001"), infra.KindSerialization)
		f := newDispenseFixture(t, ledger)
		f.expectRegistries()
		f.expectFreshKey()
		f.expectRelease()

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrConcurrencyConflict), "got %v", err)
	})

	t.Run("failed attempt releases its idempotency key", func(t *testing.T) {
		ledger := newFakeLedger(60, 0)
		ledger.withinErr = infra.WrapRepoErr("transaction failed after 3 retries", errors.New("40001"), infra.KindSerialization)
		f := newDispenseFixture(t, ledger)
		f.expectRegistries()

		key := uuid.New()
		req := f.request(10)
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), key, req.StationID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.idempotency.EXPECT().Delete(gomock.Any(), key, req.StationID).Return(nil).Times(1)

		_, err := f.uc.RecordDispense(ctx, req, key)
		require.Error(t, err)
	})

	t.Run("retry with the same key after a failure succeeds", func(t *testing.T) {
		ledger := newFakeLedger(60, 0)
		ledger.withinErr = infra.WrapRepoErr("transaction failed after 3 retries", errors.New("40001"), infra.KindSerialization)
		f := newDispenseFixture(t, ledger)
		f.expectRegistries()

		key := uuid.New()
		req := f.request(10)
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), key, req.StationID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil).Times(2)
		f.idempotency.EXPECT().Delete(gomock.Any(), key, req.StationID).Return(nil).Times(1)
		f.sink.EXPECT().Apply(gomock.Any()).Times(1)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		_, err := f.uc.RecordDispense(ctx, req, key)
		require.Error(t, err)

		ledger.withinErr = nil
		result, err := f.uc.RecordDispense(ctx, req, key)
		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Equal(t, 50.0, result.RemainingQuota)
	})

	t.Run("debit crossing the low threshold enqueues a warning", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 43))
		f.expectRegistries()
		f.expectFreshKey()
		f.sink.EXPECT().Apply(gomock.Any()).Times(1)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		// 17 -> 11 litres remaining crosses 20%.
		_, err := f.uc.RecordDispense(ctx, f.request(6), uuid.New())
		require.NoError(t, err)

		require.Len(t, f.ledger.jobs, 2)
		assert.Equal(t, "fuel_dispensed", f.ledger.jobs[0].topic)
		assert.Equal(t, "low_quota_warning", f.ledger.jobs[1].topic)
	})

	t.Run("debit crossing the critical threshold", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 53))
		f.expectRegistries()
		f.expectFreshKey()
		f.sink.EXPECT().Apply(gomock.Any()).Times(1)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		// 7 -> 5 litres remaining crosses 10%.
		_, err := f.uc.RecordDispense(ctx, f.request(2), uuid.New())
		require.NoError(t, err)

		require.Len(t, f.ledger.jobs, 2)
		assert.Equal(t, "critical_quota_warning", f.ledger.jobs[1].topic)
	})

	t.Run("debit staying above both thresholds sends no warning", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		f.expectRegistries()
		f.expectFreshKey()
		f.sink.EXPECT().Apply(gomock.Any()).Times(1)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		_, err := f.uc.RecordDispense(ctx, f.request(10), uuid.New())
		require.NoError(t, err)

		require.Len(t, f.ledger.jobs, 1)
		assert.Equal(t, "fuel_dispensed", f.ledger.jobs[0].topic)
	})
}

// Two simultaneous debits against 5 remaining litres: exactly one may win.
func TestRecordDispenseConcurrent(t *testing.T) {
	f := newDispenseFixture(t, newFakeLedger(60, 55))
	f.expectRegistries()
	f.expectFreshKey()
	f.expectRelease()
	f.sink.EXPECT().Apply(gomock.Any()).Times(1)
	f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

	ctx := context.Background()
	errCh := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.uc.RecordDispense(ctx, f.request(4), uuid.New())
			errCh <- err
		}()
	}

	var failures []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			failures = append(failures, err)
		}
	}

	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], errs.ErrInsufficientQuota)
	assert.Equal(t, 59.0, f.ledger.used)
	require.Len(t, f.ledger.transactions, 1)
	assert.Equal(t, 4.0, f.ledger.transactions[0].Amount())
}

func TestMarkDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the transaction completed", func(t *testing.T) {
		f := newDispenseFixture(t, newFakeLedger(60, 0))
		id := uuid.New()

		require.NoError(t, f.uc.MarkDelivered(ctx, id))
		assert.Equal(t, []uuid.UUID{id}, f.ledger.completedTxIDs)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		ledger := newFakeLedger(60, 0)
		ledger.markCompletedMissing = true
		f := newDispenseFixture(t, ledger)

		err := f.uc.MarkDelivered(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}
