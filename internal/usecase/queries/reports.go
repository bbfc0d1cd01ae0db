package queries

import (
	"context"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errs.New("invalid date range")
	ErrInvalidBucket    = errs.New("invalid trend bucket")
)

type ReportQueries interface {
	Consumption(ctx context.Context, start, end time.Time, fuelFilter *vehicle.FuelType) (analytics.ConsumptionReport, error)
	StationPerformance(ctx context.Context, start, end time.Time) (analytics.StationPerformanceReport, error)
	StationStats(ctx context.Context, stationID uuid.UUID, start, end time.Time) (analytics.StationStats, error)
	TopConsumers(ctx context.Context, n int, start, end time.Time) ([]analytics.TopConsumer, error)
	UsageTrends(ctx context.Context, start, end time.Time, bucket analytics.Bucket) ([]analytics.TrendPoint, error)
	Utilization(ctx context.Context, month time.Time) (*UtilizationReport, error)
}

// UtilizationReadStore aggregates the live allocation table; utilization is
// about entitlement versus usage, which the transaction log alone cannot
// answer, so it bypasses the analytics engine.
type UtilizationReadStore interface {
	AggregateUtilization(ctx context.Context, periodStart, periodEnd time.Time) (*UtilizationReport, error)
}

type reportQueriesImpl struct {
	engine    *analytics.Engine
	readStore UtilizationReadStore
	loc       *time.Location
}

func NewReportQueries(engine *analytics.Engine, readStore UtilizationReadStore, loc *time.Location) ReportQueries {
	return &reportQueriesImpl{
		engine:    engine,
		readStore: readStore,
		loc:       loc,
	}
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

func (q *reportQueriesImpl) Consumption(_ context.Context, start, end time.Time, fuelFilter *vehicle.FuelType) (analytics.ConsumptionReport, error) {
	if err := validateRange(start, end); err != nil {
		return analytics.ConsumptionReport{}, err
	}
	return q.engine.Consumption(start, end, fuelFilter), nil
}

func (q *reportQueriesImpl) StationPerformance(_ context.Context, start, end time.Time) (analytics.StationPerformanceReport, error) {
	if err := validateRange(start, end); err != nil {
		return analytics.StationPerformanceReport{}, err
	}
	return q.engine.StationPerformance(start, end), nil
}

func (q *reportQueriesImpl) StationStats(_ context.Context, stationID uuid.UUID, start, end time.Time) (analytics.StationStats, error) {
	if err := validateRange(start, end); err != nil {
		return analytics.StationStats{}, err
	}
	stats, ok := q.engine.StationStatsFor(stationID, start, end)
	if !ok {
		return analytics.StationStats{}, errs.ErrStationNotFound
	}
	return stats, nil
}

func (q *reportQueriesImpl) TopConsumers(_ context.Context, n int, start, end time.Time) ([]analytics.TopConsumer, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 10
	}
	return q.engine.TopConsumers(n, start, end), nil
}

func (q *reportQueriesImpl) UsageTrends(_ context.Context, start, end time.Time, bucket analytics.Bucket) ([]analytics.TrendPoint, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if !bucket.IsValid() {
		return nil, ErrInvalidBucket
	}
	return q.engine.UsageTrends(start, end, bucket), nil
}

// Utilization reports on the calendar month containing the given date.
func (q *reportQueriesImpl) Utilization(ctx context.Context, month time.Time) (*UtilizationReport, error) {
	local := month.In(q.loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, q.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	report, err := q.readStore.AggregateUtilization(ctx, start, end)
	if err != nil {
		return nil, err
	}
	report.Month = start
	return report, nil
}
