package kv

import (
	"context"

	"horse-control/internal/domain/reproduction"
	"horse-control/internal/ports/store"
)

type ReproductionRepo struct {
	col *collection[reproduction.Record]
}

func NewReproductionRepo(st store.Store) *ReproductionRepo {
	return &ReproductionRepo{col: newCollection[reproduction.Record](st, store.KeyReproductions)}
}

func (r *ReproductionRepo) Create(ctx context.Context, rec reproduction.Record) error {
	return r.col.mutate(ctx, func(items []reproduction.Record) ([]reproduction.Record, error) {
		return append(items, rec), nil
	})
}

func (r *ReproductionRepo) Update(ctx context.Context, rec reproduction.Record) error {
	return r.col.mutate(ctx, func(items []reproduction.Record) ([]reproduction.Record, error) {
		for i := range items {
			if items[i].ID == rec.ID {
				items[i] = rec
				return items, nil
			}
		}
		return nil, reproduction.ErrNotFound
	})
}

func (r *ReproductionRepo) GetByID(ctx context.Context, id string) (reproduction.Record, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return reproduction.Record{}, err
	}
	for _, rec := range items {
		if rec.ID == id {
			return rec, nil
		}
	}
	return reproduction.Record{}, reproduction.ErrNotFound
}

func (r *ReproductionRepo) List(ctx context.Context) ([]reproduction.Record, error) {
	return r.col.load(ctx)
}

func (r *ReproductionRepo) ListByMare(ctx context.Context, mareID string) ([]reproduction.Record, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]reproduction.Record, 0, len(items))
	for _, rec := range items {
		if rec.MareID == mareID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// DeleteByHorse purga registros donde el caballo participa como yegua
// o como padrillo. Es parte de la cascada de borrado.
func (r *ReproductionRepo) DeleteByHorse(ctx context.Context, horseID string) error {
	return r.col.mutate(ctx, func(items []reproduction.Record) ([]reproduction.Record, error) {
		out := items[:0]
		for _, rec := range items {
			if rec.MareID != horseID && rec.StallionID != horseID {
				out = append(out, rec)
			}
		}
		return out, nil
	})
}
