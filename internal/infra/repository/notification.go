package repository

import (
	"context"
	"encoding/json"
	"time"

	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/infra/db"
	"fuel-quota-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// NotificationRepository writes outbox rows picked up by the external
// notification dispatcher.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

const insertNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, created_at)
VALUES ($1, $2, $3, $4, $5, now())`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload json.RawMessage, runAt time.Time) error {
	_, err := r.db.Exec(ctx, insertNotificationJobSQL, uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
