package queries

import (
	"context"
	"time"

	"fuel-quota-service/internal/domain/quota"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/cache"
	"fuel-quota-service/internal/pkg/clock"
	"fuel-quota-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type QuotaQueries interface {
	GetByVehicle(ctx context.Context, vehicleID uuid.UUID) (*QuotaView, error)
	GetByRegistration(ctx context.Context, registration string) (*QuotaView, error)
}

// QuotaReadStore resolves snapshots across the ledger and the registry.
type QuotaReadStore interface {
	FindSnapshotByVehicle(ctx context.Context, vehicleID uuid.UUID) (*QuotaSnapshot, error)
	ResolveVehicleID(ctx context.Context, registration string) (uuid.UUID, error)
}

type quotaQueriesImpl struct {
	readStore  QuotaReadStore
	cache      *cache.TTL[uuid.UUID, *QuotaSnapshot]
	clock      clock.Clock
	warnWindow time.Duration
}

func NewQuotaQueries(readStore QuotaReadStore, snapshots *cache.TTL[uuid.UUID, *QuotaSnapshot], clk clock.Clock, expiryWarnDays int) QuotaQueries {
	return &quotaQueriesImpl{
		readStore:  readStore,
		cache:      snapshots,
		clock:      clk,
		warnWindow: time.Duration(expiryWarnDays) * 24 * time.Hour,
	}
}

// QuotaCacheInvalidator drops cached snapshots after ledger writes. It shares
// the cache instance with the query side.
type QuotaCacheInvalidator struct {
	cache *cache.TTL[uuid.UUID, *QuotaSnapshot]
}

func NewQuotaCacheInvalidator(snapshots *cache.TTL[uuid.UUID, *QuotaSnapshot]) *QuotaCacheInvalidator {
	return &QuotaCacheInvalidator{cache: snapshots}
}

func (i *QuotaCacheInvalidator) Invalidate(vehicleID uuid.UUID) {
	i.cache.Invalidate(vehicleID)
}

func (q *quotaQueriesImpl) GetByVehicle(ctx context.Context, vehicleID uuid.UUID) (*QuotaView, error) {
	snap, ok := q.cache.Get(vehicleID)
	if !ok {
		var err error
		snap, err = q.readStore.FindSnapshotByVehicle(ctx, vehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrQuotaNotFound
			}
			return nil, err
		}
		q.cache.Set(vehicleID, snap)
	}

	return q.toView(snap), nil
}

func (q *quotaQueriesImpl) GetByRegistration(ctx context.Context, registration string) (*QuotaView, error) {
	vehicleID, err := q.readStore.ResolveVehicleID(ctx, registration)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, err
	}
	return q.GetByVehicle(ctx, vehicleID)
}

// Derived fields are computed at read time against the current clock rather
// than stored, so a cached snapshot still yields a fresh expiry assessment.
func (q *quotaQueriesImpl) toView(snap *QuotaSnapshot) *QuotaView {
	now := q.clock.Now()

	remaining := snap.AllocatedAmount - snap.UsedAmount
	usagePct := 0.0
	if snap.AllocatedAmount > 0 {
		usagePct = snap.UsedAmount / snap.AllocatedAmount * 100
	}
	remainingPct := 100 - usagePct

	warning := "none"
	switch {
	case remainingPct <= quota.CriticalQuotaThresholdPercent:
		warning = "critical"
	case remainingPct <= quota.LowQuotaThresholdPercent:
		warning = "low"
	}

	expired := now.After(snap.PeriodEnd)
	expiringSoon := !expired && now.Add(q.warnWindow).After(snap.PeriodEnd)

	return &QuotaView{
		VehicleID:           snap.VehicleID,
		RegistrationNumber:  snap.RegistrationNumber,
		VehicleType:         snap.VehicleType,
		FuelType:            snap.FuelType,
		PeriodStart:         snap.PeriodStart,
		PeriodEnd:           snap.PeriodEnd,
		AllocatedAmount:     snap.AllocatedAmount,
		UsedAmount:          snap.UsedAmount,
		RemainingAmount:     remaining,
		UsagePercentage:     usagePct,
		RemainingPercentage: remainingPct,
		WarningLevel:        warning,
		ExpiringSoon:        expiringSoon,
		Expired:             expired,
	}
}
