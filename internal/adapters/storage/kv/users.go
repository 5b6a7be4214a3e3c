package kv

import (
	"context"
	"strings"

	"horse-control/internal/domain/users"
	"horse-control/internal/ports/store"
)

type UserRepo struct {
	col *collection[users.User]
}

func NewUserRepo(st store.Store) *UserRepo {
	return &UserRepo{col: newCollection[users.User](st, store.KeyUsers)}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	return r.col.mutate(ctx, func(items []users.User) ([]users.User, error) {
		return append(items, u), nil
	})
}

func (r *UserRepo) Update(ctx context.Context, u users.User) error {
	return r.col.mutate(ctx, func(items []users.User) ([]users.User, error) {
		for i := range items {
			if items[i].ID == u.ID {
				items[i] = u
				return items, nil
			}
		}
		return nil, users.ErrNotFound
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return users.User{}, err
	}
	for _, u := range items {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return users.User{}, err
	}
	for _, u := range items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	return r.col.load(ctx)
}
