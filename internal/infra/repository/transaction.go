package repository

import (
	"context"

	"fuel-quota-service/internal/domain/dispense"
	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TransactionRepository struct {
	db db.DBTX
}

func NewTransactionRepository(dbtx db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: dbtx}
}

const insertTransactionSQL = `
INSERT INTO fuel_transactions (id, vehicle_id, station_id, fuel_type, amount,
                               quota_before, quota_after, status,
                               idempotency_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *TransactionRepository) Create(ctx context.Context, tx *dispense.Transaction) error {
	_, err := r.db.Exec(ctx, insertTransactionSQL,
		tx.ID(),
		tx.VehicleID(),
		tx.StationID(),
		string(tx.FuelType()),
		tx.Amount(),
		tx.QuotaBefore(),
		tx.QuotaAfter(),
		string(tx.Status()),
		tx.IdempotencyKey(),
		pgconv.TimeToPgtype(tx.CreatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert fuel transaction", err)
	}
	return nil
}

// MarkCompleted is idempotent: repeating the call on an already completed
// transaction is a no-op, not an error.
func (r *TransactionRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE fuel_transactions SET status = $2 WHERE id = $1`, id, string(dispense.StatusCompleted))
	if err != nil {
		return infra.WrapRepoErr("failed to mark transaction completed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("fuel transaction not found", nil, infra.KindNotFound)
	}
	return nil
}
