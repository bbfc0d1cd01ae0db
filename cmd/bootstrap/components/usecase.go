package components

import (
	"context"
	"log/slog"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/pkg/cache"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/config"
	"fuel-quota-service/internal/usecase"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(warmUpAnalytics),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewLocation,
	analytics.NewEngine,
	fx.Annotate(
		func(engine *analytics.Engine) *analytics.Engine { return engine },
		fx.As(new(commands.AnalyticsSink)),
	),
	NewQuotaSnapshotCache,
	fx.Annotate(
		queries.NewQuotaCacheInvalidator,
		fx.As(new(commands.QuotaCacheInvalidator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDispenseUseCase,
		commands.NewQuotaUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewQuotaQueries,
		queries.NewReportQueries,
		queries.NewTransactionQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewLocation(cfg config.Config) *time.Location {
	loc, err := time.LoadLocation(cfg.Quota.TimeZone)
	if err != nil {
		panic("invalid QUOTA_TIMEZONE: " + err.Error())
	}
	return loc
}

func NewQuotaSnapshotCache(cfg config.Config) *cache.TTL[uuid.UUID, *queries.QuotaSnapshot] {
	return cache.NewTTL[uuid.UUID, *queries.QuotaSnapshot](cfg.Cache.QuotaViewSize, cfg.Cache.QuotaViewTTL)
}

func NewQuotaQueries(
	readStore queries.QuotaReadStore,
	snapshots *cache.TTL[uuid.UUID, *queries.QuotaSnapshot],
	clk clock.Clock,
	cfg config.Config,
) queries.QuotaQueries {
	return queries.NewQuotaQueries(readStore, snapshots, clk, cfg.Quota.ExpiryWarnDays)
}

// warmUpAnalytics rebuilds the in-memory aggregates from the committed
// transaction log before the server starts accepting requests.
func warmUpAnalytics(lc fx.Lifecycle, engine *analytics.Engine, source analytics.Source) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			started := time.Now()
			if err := engine.Rebuild(ctx, source); err != nil {
				return err
			}
			slog.Info("analytics engine warmed up", "duration", time.Since(started))
			return nil
		},
	})
}
