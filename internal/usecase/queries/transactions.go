package queries

import (
	"context"
	"time"

	"fuel-quota-service/internal/infra"
	"fuel-quota-service/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 200
)

type TransactionFilter struct {
	StationID *uuid.UUID
	VehicleID *uuid.UUID
	Before    *time.Time // keyset cursor: created_at of the last row seen
	Limit     int32
}

type TransactionQueries interface {
	List(ctx context.Context, filter TransactionFilter) ([]*TransactionView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
}

type TransactionViewStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	ListViews(ctx context.Context, filter TransactionFilter) ([]*TransactionView, error)
}

type transactionQueriesImpl struct {
	readStore TransactionViewStore
}

func NewTransactionQueries(readStore TransactionViewStore) TransactionQueries {
	return &transactionQueriesImpl{readStore: readStore}
}

func (q *transactionQueriesImpl) List(ctx context.Context, filter TransactionFilter) ([]*TransactionView, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultTransactionPageSize
	}
	if filter.Limit > maxTransactionPageSize {
		filter.Limit = maxTransactionPageSize
	}
	return q.readStore.ListViews(ctx, filter)
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	view, err := q.readStore.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, err
	}
	return view, nil
}
