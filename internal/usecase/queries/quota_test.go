//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/cache"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/queries"
	"fuel-quota-service/tests/common/builder"
	queriesmock "fuel-quota-service/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type quotaQueryFixture struct {
	readStore   *queriesmock.MockQuotaReadStore
	cache       *cache.TTL[uuid.UUID, *queries.QuotaSnapshot]
	clock       *clock.MockClock
	invalidator *queries.QuotaCacheInvalidator
	qq          queries.QuotaQueries
}

func newQuotaQueryFixture(t *testing.T) *quotaQueryFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &quotaQueryFixture{
		readStore: queriesmock.NewMockQuotaReadStore(ctrl),
		cache:     cache.NewTTL[uuid.UUID, *queries.QuotaSnapshot](16, time.Minute),
		clock:     clock.NewMockClock(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)),
	}
	f.invalidator = queries.NewQuotaCacheInvalidator(f.cache)
	f.qq = queries.NewQuotaQueries(f.readStore, f.cache, f.clock, 3)
	return f
}

func snapshotFor(vehicleID uuid.UUID, used float64) *queries.QuotaSnapshot {
	return builder.NewAllocationBuilder().With(func(b *builder.AllocationBuilder) {
		b.VehicleID = vehicleID
		b.UsedAmount = used
	}).BuildSnapshot("CAB-1234", "Car")
}

func TestGetByVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads the snapshot once", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		vehicleID := uuid.New()
		f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
			Return(snapshotFor(vehicleID, 15), nil).Times(1)

		view, err := f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.Equal(t, 45.0, view.RemainingAmount)
		assert.Equal(t, 25.0, view.UsagePercentage)
		assert.Equal(t, "none", view.WarningLevel)

		// Second read is served from the cache; Times(1) above enforces it.
		again, err := f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.Equal(t, view.RemainingAmount, again.RemainingAmount)
	})

	t.Run("invalidation forces a reload", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		vehicleID := uuid.New()
		gomock.InOrder(
			f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
				Return(snapshotFor(vehicleID, 15), nil),
			f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
				Return(snapshotFor(vehicleID, 25), nil),
		)

		first, err := f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.Equal(t, 45.0, first.RemainingAmount)

		f.invalidator.Invalidate(vehicleID)

		second, err := f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.Equal(t, 35.0, second.RemainingAmount)
	})

	t.Run("warning levels derive from the remaining percentage", func(t *testing.T) {
		cases := []struct {
			name     string
			used     float64
			expected string
		}{
			{"plenty remaining", 10, "none"},
			{"at the low threshold", 48, "low"},
			{"between thresholds", 50, "low"},
			{"at the critical threshold", 54, "critical"},
			{"nothing remaining", 60, "critical"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newQuotaQueryFixture(t)
				vehicleID := uuid.New()
				f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
					Return(snapshotFor(vehicleID, c.used), nil)

				view, err := f.qq.GetByVehicle(ctx, vehicleID)
				require.NoError(t, err)
				assert.Equal(t, c.expected, view.WarningLevel)
			})
		}
	})

	t.Run("expiry flags are computed against the clock", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		vehicleID := uuid.New()
		f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
			Return(snapshotFor(vehicleID, 0), nil).Times(1)

		// Mid-month: neither flag.
		view, err := f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.False(t, view.ExpiringSoon)
		assert.False(t, view.Expired)

		// Within the three-day warn window, served from the same cached
		// snapshot but reassessed against the new clock.
		f.clock.Set(time.Date(2026, 6, 29, 12, 0, 0, 0, time.UTC))
		view, err = f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.True(t, view.ExpiringSoon)
		assert.False(t, view.Expired)

		// Past the period end.
		f.clock.Set(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
		view, err = f.qq.GetByVehicle(ctx, vehicleID)
		require.NoError(t, err)
		assert.False(t, view.ExpiringSoon)
		assert.True(t, view.Expired)
	})

	t.Run("missing allocation", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("fuel quota not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.qq.GetByVehicle(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrQuotaNotFound)
	})
}

func TestGetByRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the registration then reads by vehicle", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		vehicleID := uuid.New()
		f.readStore.EXPECT().ResolveVehicleID(gomock.Any(), "CAB-1234").Return(vehicleID, nil)
		f.readStore.EXPECT().FindSnapshotByVehicle(gomock.Any(), vehicleID).
			Return(snapshotFor(vehicleID, 15), nil)

		view, err := f.qq.GetByRegistration(ctx, "CAB-1234")
		require.NoError(t, err)
		assert.Equal(t, vehicleID, view.VehicleID)
		assert.Equal(t, "CAB-1234", view.RegistrationNumber)
	})

	t.Run("unknown registration", func(t *testing.T) {
		f := newQuotaQueryFixture(t)
		f.readStore.EXPECT().ResolveVehicleID(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("vehicle not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.qq.GetByRegistration(ctx, "ZZZ-9999")
		assert.ErrorIs(t, err, errs.ErrVehicleNotFound)
	})
}
