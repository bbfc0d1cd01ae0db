//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/queries"
	"fuel-quota-service/tests/common/builder"
	queriesmock "fuel-quota-service/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reportFixture struct {
	engine    *analytics.Engine
	readStore *queriesmock.MockUtilizationReadStore
	rq        queries.ReportQueries
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &reportFixture{
		engine:    analytics.NewEngine(time.UTC),
		readStore: queriesmock.NewMockUtilizationReadStore(ctrl),
	}
	f.rq = queries.NewReportQueries(f.engine, f.readStore, time.UTC)
	return f
}

func TestReportValidation(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("reversed range", func(t *testing.T) {
		_, err := f.rq.Consumption(ctx, end, start, nil)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)

		_, err = f.rq.StationPerformance(ctx, end, start)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)

		_, err = f.rq.TopConsumers(ctx, 10, end, start)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})

	t.Run("zero range bounds", func(t *testing.T) {
		_, err := f.rq.Consumption(ctx, time.Time{}, end, nil)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})

	t.Run("invalid trend bucket", func(t *testing.T) {
		_, err := f.rq.UsageTrends(ctx, start, end, analytics.Bucket("hour"))
		assert.ErrorIs(t, err, queries.ErrInvalidBucket)
	})

	t.Run("unknown station", func(t *testing.T) {
		_, err := f.rq.StationStats(ctx, uuid.New(), start, end)
		assert.ErrorIs(t, err, errs.ErrStationNotFound)
	})
}

func TestReportQueriesDelegate(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	stationID := uuid.New()
	f.engine.Apply(builder.NewRecordBuilder().With(func(b *builder.RecordBuilder) {
		b.StationID = stationID
		b.StationName = "Galle Road"
		b.Amount = 12
		b.Timestamp = time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	}).Build())

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	report, err := f.rq.Consumption(ctx, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 12.0, report.TotalFuel)

	stats, err := f.rq.StationStats(ctx, stationID, start, end)
	require.NoError(t, err)
	assert.Equal(t, "Galle Road", stats.StationName)

	consumers, err := f.rq.TopConsumers(ctx, 0, start, end)
	require.NoError(t, err)
	require.Len(t, consumers, 1)
}

func TestUtilization(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	monthStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)

	f.readStore.EXPECT().
		AggregateUtilization(gomock.Any(), monthStart, monthEnd).
		Return(&queries.UtilizationReport{
			VehicleCount:   4,
			TotalAllocated: 240,
			TotalUsed:      100,
		}, nil)

	report, err := f.rq.Utilization(ctx, time.Date(2026, 6, 17, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, monthStart, report.Month)
	assert.Equal(t, 4, report.VehicleCount)
	assert.Equal(t, 100.0, report.TotalUsed)
}
