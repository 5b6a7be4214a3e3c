package notifications

import (
	"context"
	"time"
)

// Repository persiste notificaciones (lista, más nuevas primero), la
// configuración de generación y la marca de último chequeo del motor.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	Update(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	List(ctx context.Context) ([]Notification, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []Notification) error

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error

	LastChecked(ctx context.Context) (time.Time, error)
	SetLastChecked(ctx context.Context, t time.Time) error
}
