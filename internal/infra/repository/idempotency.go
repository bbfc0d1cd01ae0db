package repository

import (
	"context"
	"time"

	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"
	"fuel-quota-service/internal/usecase/commands"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, station_id, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now())
ON CONFLICT (key, station_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_transaction_id = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = now()
WHERE idempotency_keys.expires_at < now()`

// TryInsert reports whether this call claimed the key. A row past its TTL is
// reclaimed as if absent. A false return means another request holds or held
// the key; callers consult Get for the outcome.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, stationID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencySQL, key, stationID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

const getIdempotencySQL = `
SELECT key, station_id, endpoint, request_hash, status, result_transaction_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND station_id = $2`

func (r *IdempotencyRepository) Get(ctx context.Context, key, stationID uuid.UUID) (*commands.IdempotencyRecord, error) {
	row := r.db.QueryRow(ctx, getIdempotencySQL, key, stationID)

	var (
		rec      commands.IdempotencyRecord
		status   string
		resultID *uuid.UUID
	)
	if err := row.Scan(&rec.Key, &rec.StationID, &rec.Endpoint, &rec.RequestHash, &status, &resultID, &rec.ExpiresAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.Status = commands.IdempotencyStatus(status)
	rec.ResultTransactionID = resultID
	return &rec, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_transaction_id = $3
WHERE key = $1 AND station_id = $2`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, stationID, resultTransactionID uuid.UUID) error {
	_, err := r.db.Exec(ctx, completeIdempotencySQL, key, stationID, resultTransactionID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

const releaseIdempotencySQL = `
DELETE FROM idempotency_keys
WHERE key = $1 AND station_id = $2 AND status = 'processing'`

// Delete releases a processing claim after a failed attempt. Completed rows
// are never removed here; they hold the replay result.
func (r *IdempotencyRepository) Delete(ctx context.Context, key, stationID uuid.UUID) error {
	_, err := r.db.Exec(ctx, releaseIdempotencySQL, key, stationID)
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
