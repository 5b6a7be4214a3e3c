package kv

import (
	"context"

	"horse-control/internal/domain/finance"
	"horse-control/internal/ports/store"
)

type TransactionRepo struct {
	col *collection[finance.Transaction]
}

func NewTransactionRepo(st store.Store) *TransactionRepo {
	return &TransactionRepo{col: newCollection[finance.Transaction](st, store.KeyTransactions)}
}

func (r *TransactionRepo) Create(ctx context.Context, t finance.Transaction) error {
	return r.col.mutate(ctx, func(items []finance.Transaction) ([]finance.Transaction, error) {
		return append(items, t), nil
	})
}

func (r *TransactionRepo) List(ctx context.Context) ([]finance.Transaction, error) {
	return r.col.load(ctx)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (finance.Transaction, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return finance.Transaction{}, err
	}
	for _, t := range items {
		if t.ID == id {
			return t, nil
		}
	}
	return finance.Transaction{}, finance.ErrNotFound
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []finance.Transaction) ([]finance.Transaction, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, finance.ErrNotFound
	})
}
