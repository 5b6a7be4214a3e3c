package kv

import (
	"context"

	"horse-control/internal/domain/collaborators"
	"horse-control/internal/ports/store"
)

type CollaboratorRepo struct {
	col *collection[collaborators.Collaborator]
}

func NewCollaboratorRepo(st store.Store) *CollaboratorRepo {
	return &CollaboratorRepo{col: newCollection[collaborators.Collaborator](st, store.KeyCollaborators)}
}

func (r *CollaboratorRepo) Create(ctx context.Context, c collaborators.Collaborator) error {
	return r.col.mutate(ctx, func(items []collaborators.Collaborator) ([]collaborators.Collaborator, error) {
		return append(items, c), nil
	})
}

func (r *CollaboratorRepo) Update(ctx context.Context, c collaborators.Collaborator) error {
	return r.col.mutate(ctx, func(items []collaborators.Collaborator) ([]collaborators.Collaborator, error) {
		for i := range items {
			if items[i].ID == c.ID {
				items[i] = c
				return items, nil
			}
		}
		return nil, collaborators.ErrNotFound
	})
}

func (r *CollaboratorRepo) GetByID(ctx context.Context, id string) (collaborators.Collaborator, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return collaborators.Collaborator{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return collaborators.Collaborator{}, collaborators.ErrNotFound
}

func (r *CollaboratorRepo) List(ctx context.Context) ([]collaborators.Collaborator, error) {
	return r.col.load(ctx)
}

func (r *CollaboratorRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []collaborators.Collaborator) ([]collaborators.Collaborator, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, collaborators.ErrNotFound
	})
}
