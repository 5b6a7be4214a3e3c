package competitions

import "context"

type Repository interface {
	Create(ctx context.Context, c Competition) error
	Update(ctx context.Context, c Competition) error
	GetByID(ctx context.Context, id string) (Competition, error)
	List(ctx context.Context) ([]Competition, error)
	Delete(ctx context.Context, id string) error
}
