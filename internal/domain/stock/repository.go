package stock

import "context"

type Repository interface {
	Create(ctx context.Context, i Item) error
	Update(ctx context.Context, i Item) error
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id string) error
}
