package kv

import (
	"context"
	"errors"

	"horse-control/internal/domain/settings"
	"horse-control/internal/ports/store"
)

type SettingsRepo struct {
	st store.Store
}

func NewSettingsRepo(st store.Store) *SettingsRepo {
	return &SettingsRepo{st: st}
}

func (r *SettingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	cfg := settings.Defaults()
	if err := r.st.Load(ctx, store.KeyAppSettings, &cfg); err != nil && !errors.Is(err, store.ErrNoDocument) {
		return settings.AppSettings{}, err
	}
	return cfg, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	return r.st.Save(ctx, store.KeyAppSettings, s)
}
