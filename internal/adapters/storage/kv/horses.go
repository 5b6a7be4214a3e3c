package kv

import (
	"context"

	"horse-control/internal/domain/horses"
	"horse-control/internal/ports/store"
)

type HorseRepo struct {
	col *collection[horses.Horse]
}

func NewHorseRepo(st store.Store) *HorseRepo {
	return &HorseRepo{col: newCollection[horses.Horse](st, store.KeyHorses)}
}

func (r *HorseRepo) Create(ctx context.Context, h horses.Horse) error {
	return r.col.mutate(ctx, func(items []horses.Horse) ([]horses.Horse, error) {
		return append(items, h), nil
	})
}

func (r *HorseRepo) Update(ctx context.Context, h horses.Horse) error {
	return r.col.mutate(ctx, func(items []horses.Horse) ([]horses.Horse, error) {
		for i := range items {
			if items[i].ID == h.ID {
				items[i] = h
				return items, nil
			}
		}
		return nil, horses.ErrNotFound
	})
}

func (r *HorseRepo) GetByID(ctx context.Context, id string) (horses.Horse, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return horses.Horse{}, err
	}
	for _, h := range items {
		if h.ID == id {
			return h, nil
		}
	}
	return horses.Horse{}, horses.ErrNotFound
}

func (r *HorseRepo) List(ctx context.Context) ([]horses.Horse, error) {
	return r.col.load(ctx)
}

func (r *HorseRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []horses.Horse) ([]horses.Horse, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, horses.ErrNotFound
	})
}
