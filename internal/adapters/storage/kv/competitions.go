package kv

import (
	"context"

	"horse-control/internal/domain/competitions"
	"horse-control/internal/ports/store"
)

type CompetitionRepo struct {
	col *collection[competitions.Competition]
}

func NewCompetitionRepo(st store.Store) *CompetitionRepo {
	return &CompetitionRepo{col: newCollection[competitions.Competition](st, store.KeyCompetitions)}
}

func (r *CompetitionRepo) Create(ctx context.Context, c competitions.Competition) error {
	return r.col.mutate(ctx, func(items []competitions.Competition) ([]competitions.Competition, error) {
		return append(items, c), nil
	})
}

func (r *CompetitionRepo) Update(ctx context.Context, c competitions.Competition) error {
	return r.col.mutate(ctx, func(items []competitions.Competition) ([]competitions.Competition, error) {
		for i := range items {
			if items[i].ID == c.ID {
				items[i] = c
				return items, nil
			}
		}
		return nil, competitions.ErrNotFound
	})
}

func (r *CompetitionRepo) GetByID(ctx context.Context, id string) (competitions.Competition, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return competitions.Competition{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return competitions.Competition{}, competitions.ErrNotFound
}

func (r *CompetitionRepo) List(ctx context.Context) ([]competitions.Competition, error) {
	return r.col.load(ctx)
}

func (r *CompetitionRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []competitions.Competition) ([]competitions.Competition, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, competitions.ErrNotFound
	})
}
