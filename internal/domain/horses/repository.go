package horses

import "context"

type Repository interface {
	Create(ctx context.Context, h Horse) error
	Update(ctx context.Context, h Horse) error
	GetByID(ctx context.Context, id string) (Horse, error)
	List(ctx context.Context) ([]Horse, error)
	Delete(ctx context.Context, id string) error
}
