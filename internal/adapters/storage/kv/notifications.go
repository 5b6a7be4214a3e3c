package kv

import (
	"context"
	"errors"
	"time"

	"horse-control/internal/domain/notifications"
	"horse-control/internal/ports/store"
)

// NotificationRepo persiste tres documentos: la lista de
// notificaciones, la configuración de generación y la marca de último
// chequeo del motor.
type NotificationRepo struct {
	st  store.Store
	col *collection[notifications.Notification]
}

func NewNotificationRepo(st store.Store) *NotificationRepo {
	return &NotificationRepo{
		st:  st,
		col: newCollection[notifications.Notification](st, store.KeyNotifications),
	}
}

func (r *NotificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	return r.col.mutate(ctx, func(items []notifications.Notification) ([]notifications.Notification, error) {
		return append([]notifications.Notification{n}, items...), nil
	})
}

func (r *NotificationRepo) Update(ctx context.Context, n notifications.Notification) error {
	return r.col.mutate(ctx, func(items []notifications.Notification) ([]notifications.Notification, error) {
		for i := range items {
			if items[i].ID == n.ID {
				items[i] = n
				return items, nil
			}
		}
		return nil, notifications.ErrNotFound
	})
}

func (r *NotificationRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return notifications.Notification{}, err
	}
	for _, n := range items {
		if n.ID == id {
			return n, nil
		}
	}
	return notifications.Notification{}, notifications.ErrNotFound
}

func (r *NotificationRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	return r.col.load(ctx)
}

func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []notifications.Notification) ([]notifications.Notification, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, notifications.ErrNotFound
	})
}

func (r *NotificationRepo) ReplaceAll(ctx context.Context, items []notifications.Notification) error {
	return r.col.mutate(ctx, func([]notifications.Notification) ([]notifications.Notification, error) {
		return items, nil
	})
}

func (r *NotificationRepo) GetSettings(ctx context.Context) (notifications.Settings, error) {
	cfg := notifications.DefaultSettings()
	if err := r.st.Load(ctx, store.KeyNotificationSettings, &cfg); err != nil && !errors.Is(err, store.ErrNoDocument) {
		return notifications.Settings{}, err
	}
	return cfg, nil
}

func (r *NotificationRepo) SaveSettings(ctx context.Context, s notifications.Settings) error {
	return r.st.Save(ctx, store.KeyNotificationSettings, s)
}

func (r *NotificationRepo) LastChecked(ctx context.Context) (time.Time, error) {
	var t time.Time
	if err := r.st.Load(ctx, store.KeyLastNotificationCheck, &t); err != nil && !errors.Is(err, store.ErrNoDocument) {
		return time.Time{}, err
	}
	return t, nil
}

func (r *NotificationRepo) SetLastChecked(ctx context.Context, t time.Time) error {
	return r.st.Save(ctx, store.KeyLastNotificationCheck, t)
}
