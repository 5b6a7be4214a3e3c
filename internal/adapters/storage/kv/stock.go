package kv

import (
	"context"

	"horse-control/internal/domain/stock"
	"horse-control/internal/ports/store"
)

type StockRepo struct {
	col *collection[stock.Item]
}

func NewStockRepo(st store.Store) *StockRepo {
	return &StockRepo{col: newCollection[stock.Item](st, store.KeyStock)}
}

func (r *StockRepo) Create(ctx context.Context, i stock.Item) error {
	return r.col.mutate(ctx, func(items []stock.Item) ([]stock.Item, error) {
		return append(items, i), nil
	})
}

func (r *StockRepo) Update(ctx context.Context, it stock.Item) error {
	return r.col.mutate(ctx, func(items []stock.Item) ([]stock.Item, error) {
		for i := range items {
			if items[i].ID == it.ID {
				items[i] = it
				return items, nil
			}
		}
		return nil, stock.ErrNotFound
	})
}

func (r *StockRepo) GetByID(ctx context.Context, id string) (stock.Item, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return stock.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return stock.Item{}, stock.ErrNotFound
}

func (r *StockRepo) List(ctx context.Context) ([]stock.Item, error) {
	return r.col.load(ctx)
}

func (r *StockRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []stock.Item) ([]stock.Item, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, stock.ErrNotFound
	})
}
