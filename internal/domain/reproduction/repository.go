package reproduction

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByMare(ctx context.Context, mareID string) ([]Record, error)
	DeleteByHorse(ctx context.Context, horseID string) error
}
