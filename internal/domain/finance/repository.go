package finance

import "context"

type Repository interface {
	Create(ctx context.Context, t Transaction) error
	List(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Delete(ctx context.Context, id string) error
}
