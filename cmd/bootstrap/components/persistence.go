package components

import (
	"context"
	"log/slog"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/infra/readstore"
	"fuel-quota-service/internal/infra/repository"
	"fuel-quota-service/internal/infra/uow"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/queries"
	"fuel-quota-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Vehicle registry
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(commands.VehicleRegistry)),
		),
		// Station registry
		fx.Annotate(
			readstore.NewStationReadStore,
			fx.As(new(commands.StationRegistry)),
		),
		// Transaction views, replay snapshots, and the analytics log
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(commands.TransactionReader)),
			fx.As(new(queries.TransactionViewStore)),
			fx.As(new(analytics.Source)),
		),
		// Quota views and utilization aggregates
		fx.Annotate(
			readstore.NewQuotaReadStore,
			fx.As(new(queries.QuotaReadStore)),
			fx.As(new(queries.UtilizationReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Idempotency claims happen outside the ledger transaction
		repository.NewIdempotencyRepository,
		func(r *repository.IdempotencyRepository) commands.IdempotencyRepository { return r },
	),
	fx.Invoke(sweepExpiredIdempotencyKeys),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

const idempotencySweepInterval = time.Hour

// sweepExpiredIdempotencyKeys garbage-collects idempotency rows past their
// TTL. TryInsert reclaims an expired row on contact; the sweep keeps rows
// nobody ever retries from piling up.
func sweepExpiredIdempotencyKeys(lc fx.Lifecycle, repo *repository.IdempotencyRepository) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(idempotencySweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := repo.DeleteExpired(ctx)
						switch {
						case err != nil:
							slog.Warn("failed to sweep expired idempotency keys", "error", err)
						case n > 0:
							slog.Info("swept expired idempotency keys", "count", n)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
