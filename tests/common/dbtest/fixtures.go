//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestVehicle(t *testing.T, db DBLike, registration, vehicleType, fuelType string, engineCapacity float64) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO vehicles (id, registration_number, vehicle_type, fuel_type, engine_capacity, owner_name, owner_contact)
		VALUES ($1, $2, $3, $4, $5, 'Test Owner', '+94771234567')
		ON CONFLICT (registration_number) DO NOTHING`,
		vehicleID, registration, vehicleType, fuelType, engineCapacity)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM vehicles WHERE registration_number = $1", registration).Scan(&vehicleID)
	}

	return vehicleID
}

func CreateTestStation(t *testing.T, db DBLike, name string, hasPetrol, hasDiesel, active bool) uuid.UUID {
	t.Helper()

	stationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO fuel_stations (id, name, city, has_petrol, has_diesel, is_active)
		VALUES ($1, $2, 'Colombo', $3, $4, $5)`,
		stationID, name, hasPetrol, hasDiesel, active)
	require.NoError(t, err)

	return stationID
}

func CreateTestQuota(t *testing.T, db DBLike, vehicleID uuid.UUID, fuelType string, allocated, used float64, periodStart, periodEnd time.Time) uuid.UUID {
	t.Helper()

	quotaID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO fuel_quotas (id, vehicle_id, fuel_type, period_start, period_end, allocated_amount, used_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (vehicle_id) DO UPDATE SET
			id = EXCLUDED.id,
			fuel_type = EXCLUDED.fuel_type,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			allocated_amount = EXCLUDED.allocated_amount,
			used_amount = EXCLUDED.used_amount`,
		quotaID, vehicleID, fuelType, periodStart, periodEnd, allocated, used)
	require.NoError(t, err)

	return quotaID
}

// SeedReferenceData is a no-op today; every test creates its own vehicles
// and stations.
func SeedReferenceData(_ *pgxpool.Pool) error {
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
