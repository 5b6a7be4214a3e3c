// Package settings guarda las preferencias generales de la aplicación
// como un único documento.
package settings

import "context"

type AppSettings struct {
	FarmName   string `json:"farmName"`
	Currency   string `json:"currency"`
	DateFormat string `json:"dateFormat"`
	Language   string `json:"language"`
	Theme      string `json:"theme"`
}

func Defaults() AppSettings {
	return AppSettings{
		Currency:   "BRL",
		DateFormat: "DD/MM/YYYY",
		Language:   "pt-BR",
		Theme:      "light",
	}
}

type Repository interface {
	Get(ctx context.Context) (AppSettings, error)
	Save(ctx context.Context, s AppSettings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (AppSettings, error) {
	return s.repo.Get(ctx)
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	FarmName   *string
	Currency   *string
	DateFormat *string
	Language   *string
	Theme      *string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (AppSettings, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return AppSettings{}, err
	}
	if in.FarmName != nil {
		cfg.FarmName = *in.FarmName
	}
	if in.Currency != nil {
		cfg.Currency = *in.Currency
	}
	if in.DateFormat != nil {
		cfg.DateFormat = *in.DateFormat
	}
	if in.Language != nil {
		cfg.Language = *in.Language
	}
	if in.Theme != nil {
		cfg.Theme = *in.Theme
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return AppSettings{}, err
	}
	return cfg, nil
}

func (s *Service) Reset(ctx context.Context) (AppSettings, error) {
	cfg := Defaults()
	if err := s.repo.Save(ctx, cfg); err != nil {
		return AppSettings{}, err
	}
	return cfg, nil
}
