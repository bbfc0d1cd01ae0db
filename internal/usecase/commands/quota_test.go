//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/tests/common/builder"
	commandsmock "fuel-quota-service/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type quotaFixture struct {
	vehicles    *commandsmock.MockVehicleRegistry
	invalidator *commandsmock.MockQuotaCacheInvalidator
	ledger      *fakeLedger
	uc          commands.QuotaCommands
}

func newQuotaFixture(t *testing.T) *quotaFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &quotaFixture{
		vehicles:    commandsmock.NewMockVehicleRegistry(ctrl),
		invalidator: commandsmock.NewMockQuotaCacheInvalidator(ctrl),
		ledger:      newFakeLedger(60, 42),
	}
	f.uc = commands.NewQuotaUseCase(
		f.vehicles, f.ledger, f.invalidator,
		clock.NewMockClock(time.Date(2026, 7, 1, 6, 0, 0, 0, time.UTC)),
		time.UTC,
	)
	return f
}

func TestRollover(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the allocation for the current month", func(t *testing.T) {
		f := newQuotaFixture(t)
		vehicleEntity, err := builder.NewVehicleBuilder().BuildDomain()
		require.NoError(t, err)

		f.vehicles.EXPECT().FindByID(gomock.Any(), vehicleEntity.ID()).Return(vehicleEntity, nil)
		f.invalidator.EXPECT().Invalidate(vehicleEntity.ID()).Times(1)

		result, err := f.uc.Rollover(ctx, vehicleEntity.ID(), nil)
		require.NoError(t, err)

		// Petrol car under 1800cc gets the standard 60 litres.
		assert.Equal(t, 60.0, result.AllocatedAmount)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), result.PeriodStart)
		assert.Equal(t, time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC), result.PeriodEnd)

		assert.Equal(t, 60.0, f.ledger.allocated)
		assert.Equal(t, 0.0, f.ledger.used)
		assert.Equal(t, result.PeriodStart, f.ledger.periodStart)

		require.Len(t, f.ledger.jobs, 1)
		assert.Equal(t, fakeJob{kind: "sms", topic: "quota_allocated"}, f.ledger.jobs[0])
	})

	t.Run("large-engine petrol car gets the bonus allowance", func(t *testing.T) {
		f := newQuotaFixture(t)
		vehicleEntity, err := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) {
			b.EngineCapacity = 2000
		}).BuildDomain()
		require.NoError(t, err)

		f.vehicles.EXPECT().FindByID(gomock.Any(), vehicleEntity.ID()).Return(vehicleEntity, nil)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		result, err := f.uc.Rollover(ctx, vehicleEntity.ID(), nil)
		require.NoError(t, err)
		assert.Equal(t, 80.0, result.AllocatedAmount)
	})

	t.Run("explicit amount overrides the policy", func(t *testing.T) {
		f := newQuotaFixture(t)
		vehicleEntity, err := builder.NewVehicleBuilder().BuildDomain()
		require.NoError(t, err)

		f.vehicles.EXPECT().FindByID(gomock.Any(), vehicleEntity.ID()).Return(vehicleEntity, nil)
		f.invalidator.EXPECT().Invalidate(gomock.Any()).Times(1)

		override := 45.0
		result, err := f.uc.Rollover(ctx, vehicleEntity.ID(), &override)
		require.NoError(t, err)
		assert.Equal(t, 45.0, result.AllocatedAmount)
		assert.Equal(t, 45.0, f.ledger.allocated)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		f := newQuotaFixture(t)
		f.vehicles.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("vehicle not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.uc.Rollover(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, errs.ErrVehicleNotFound)
		assert.Zero(t, f.ledger.withinCalls.Load())
	})

	t.Run("non-positive override is rejected before the ledger", func(t *testing.T) {
		f := newQuotaFixture(t)
		vehicleEntity, err := builder.NewVehicleBuilder().BuildDomain()
		require.NoError(t, err)
		f.vehicles.EXPECT().FindByID(gomock.Any(), vehicleEntity.ID()).Return(vehicleEntity, nil)

		override := 0.0
		_, err = f.uc.Rollover(ctx, vehicleEntity.ID(), &override)
		assert.Error(t, err)
		assert.Zero(t, f.ledger.withinCalls.Load())
	})
}

func TestBulkAllocate(t *testing.T) {
	ctx := context.Background()

	t.Run("continues past individual failures", func(t *testing.T) {
		f := newQuotaFixture(t)

		okVehicle, err := builder.NewVehicleBuilder().BuildDomain()
		require.NoError(t, err)
		missingID := uuid.New()

		f.vehicles.EXPECT().ListIDs(gomock.Any(), gomock.Nil(), gomock.Nil()).
			Return([]uuid.UUID{okVehicle.ID(), missingID}, nil)
		f.vehicles.EXPECT().FindByID(gomock.Any(), okVehicle.ID()).Return(okVehicle, nil)
		f.vehicles.EXPECT().FindByID(gomock.Any(), missingID).
			Return(nil, infra.WrapRepoErr("vehicle not found", errors.New("no rows"), infra.KindNotFound))
		f.invalidator.EXPECT().Invalidate(okVehicle.ID()).Times(1)

		result, err := f.uc.BulkAllocate(ctx, commands.BulkAllocateFilter{}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.AffectedVehicles)
		assert.Equal(t, 1, result.FailedVehicles)
	})

	t.Run("filter is passed through to the registry", func(t *testing.T) {
		f := newQuotaFixture(t)

		vt := vehicle.TypeCar
		ft := vehicle.FuelPetrol
		f.vehicles.EXPECT().ListIDs(gomock.Any(), &vt, &ft).Return(nil, nil)

		result, err := f.uc.BulkAllocate(ctx, commands.BulkAllocateFilter{VehicleType: &vt, FuelType: &ft}, nil)
		require.NoError(t, err)
		assert.Zero(t, result.AffectedVehicles)
		assert.Zero(t, result.FailedVehicles)
	})

	t.Run("registry listing failure aborts the batch", func(t *testing.T) {
		f := newQuotaFixture(t)
		f.vehicles.EXPECT().ListIDs(gomock.Any(), gomock.Nil(), gomock.Nil()).
			Return(nil, infra.WrapRepoErr("db down", errors.New("connection refused"), infra.KindUnavailable))

		_, err := f.uc.BulkAllocate(ctx, commands.BulkAllocateFilter{}, nil)
		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable), "got %v", err)
	})
}
