package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxStored acota el almacenamiento: al insertar la número 101 se
// descarta la más vieja.
const MaxStored = 100

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	Type     Type
	Title    string
	Message  string
	Link     string
	DedupKey string
}

// Add inserta una notificación si la clave de de-duplicación no está ya
// representada en la lista completa actual. Devuelve false cuando la
// condición ya tenía una alerta (leída o no): nunca se duplica.
func (s *Service) Add(ctx context.Context, in AddInput) (Notification, bool, error) {
	if !validType(in.Type) || strings.TrimSpace(in.Title) == "" {
		return Notification{}, false, ErrInvalidInput
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return Notification{}, false, err
	}
	if in.DedupKey != "" {
		for _, n := range items {
			if n.DedupKey == in.DedupKey {
				return n, false, nil
			}
		}
	}

	n := Notification{
		ID:        uuid.NewString(),
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		Link:      in.Link,
		DedupKey:  in.DedupKey,
		CreatedAt: s.now(),
	}

	items = append([]Notification{n}, items...)
	if len(items) > MaxStored {
		items = items[:MaxStored]
	}
	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		return Notification{}, false, err
	}
	return n, true, nil
}

func (s *Service) List(ctx context.Context) ([]Notification, error) {
	return s.repo.List(ctx)
}

// UnreadCount es derivado, nunca se persiste.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Read = true
	}
	return s.repo.ReplaceAll(ctx, items)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ClearAll(ctx context.Context) error {
	return s.repo.ReplaceAll(ctx, []Notification{})
}

func (s *Service) Settings(ctx context.Context) (Settings, error) {
	return s.repo.GetSettings(ctx)
}

// SettingsInput usa punteros para PATCH real: nil = no tocar.
type SettingsInput struct {
	Enabled              *bool
	EventReminders       *bool
	LowStockAlerts       *bool
	HealthAlerts         *bool
	CompetitionReminders *bool
	ReproductionAlerts   *bool
}

func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (Settings, error) {
	cfg, err := s.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, err
	}
	if in.Enabled != nil {
		cfg.Enabled = *in.Enabled
	}
	if in.EventReminders != nil {
		cfg.EventReminders = *in.EventReminders
	}
	if in.LowStockAlerts != nil {
		cfg.LowStockAlerts = *in.LowStockAlerts
	}
	if in.HealthAlerts != nil {
		cfg.HealthAlerts = *in.HealthAlerts
	}
	if in.CompetitionReminders != nil {
		cfg.CompetitionReminders = *in.CompetitionReminders
	}
	if in.ReproductionAlerts != nil {
		cfg.ReproductionAlerts = *in.ReproductionAlerts
	}
	if err := s.repo.SaveSettings(ctx, cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s *Service) LastChecked(ctx context.Context) (time.Time, error) {
	return s.repo.LastChecked(ctx)
}
