package collaborators

import "context"

type Repository interface {
	Create(ctx context.Context, c Collaborator) error
	Update(ctx context.Context, c Collaborator) error
	GetByID(ctx context.Context, id string) (Collaborator, error)
	List(ctx context.Context) ([]Collaborator, error)
	Delete(ctx context.Context, id string) error
}
