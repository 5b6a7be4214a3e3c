package kv

import (
	"context"

	"horse-control/internal/domain/health"
	"horse-control/internal/ports/store"
)

type HealthEventRepo struct {
	col *collection[health.Event]
}

func NewHealthEventRepo(st store.Store) *HealthEventRepo {
	return &HealthEventRepo{col: newCollection[health.Event](st, store.KeyEvents)}
}

func (r *HealthEventRepo) Create(ctx context.Context, e health.Event) error {
	return r.col.mutate(ctx, func(items []health.Event) ([]health.Event, error) {
		return append(items, e), nil
	})
}

func (r *HealthEventRepo) Update(ctx context.Context, e health.Event) error {
	return r.col.mutate(ctx, func(items []health.Event) ([]health.Event, error) {
		for i := range items {
			if items[i].ID == e.ID {
				items[i] = e
				return items, nil
			}
		}
		return nil, health.ErrNotFound
	})
}

func (r *HealthEventRepo) GetByID(ctx context.Context, id string) (health.Event, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return health.Event{}, err
	}
	for _, e := range items {
		if e.ID == id {
			return e, nil
		}
	}
	return health.Event{}, health.ErrNotFound
}

func (r *HealthEventRepo) List(ctx context.Context) ([]health.Event, error) {
	return r.col.load(ctx)
}

func (r *HealthEventRepo) ListByHorse(ctx context.Context, horseID string) ([]health.Event, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]health.Event, 0, len(items))
	for _, e := range items {
		if e.HorseID == horseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *HealthEventRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []health.Event) ([]health.Event, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, health.ErrNotFound
	})
}

// DeleteByHorse es parte de la cascada al borrar un caballo: no es un
// error que el caballo no tenga eventos.
func (r *HealthEventRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	return r.col.mutate(ctx, func(items []health.Event) ([]health.Event, error) {
		out := items[:0]
		for _, e := range items {
			if e.HorseID != horseID {
				out = append(out, e)
			}
		}
		return out, nil
	})
}
