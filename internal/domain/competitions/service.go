package competitions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("competition not found")
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

// EntryInput lleva el id y el nombre ya resuelto del caballo.
// El nombre queda congelado como snapshot en la inscripción.
type EntryInput struct {
	HorseID   string
	HorseName string
}

type CreateInput struct {
	Name     string
	Date     time.Time
	Location string
	Category string
	Entries  []EntryInput
	Notes    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Competition, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Competition{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Competition{}, ErrInvalidInput
	}
	if len(in.Entries) == 0 {
		return Competition{}, ErrInvalidInput
	}

	entries := make([]Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		if strings.TrimSpace(e.HorseID) == "" || strings.TrimSpace(e.HorseName) == "" {
			return Competition{}, ErrInvalidInput
		}
		entries = append(entries, Entry{
			HorseID:   e.HorseID,
			HorseName: strings.TrimSpace(e.HorseName),
		})
	}

	c := Competition{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Date:      in.Date,
		Location:  strings.TrimSpace(in.Location),
		Category:  strings.TrimSpace(in.Category),
		Horses:    entries,
		Status:    StatusRegistered,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Competition{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Competition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Competition, error) {
	return s.repo.List(ctx)
}

// ListConfirmedWithin devuelve las competencias confirmadas con fecha
// dentro de los próximos days días (hoy inclusive). Alimenta al
// generador de notificaciones.
func (s *Service) ListConfirmedWithin(ctx context.Context, days int) ([]Competition, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.now())
	out := make([]Competition, 0)
	for _, c := range all {
		if c.Status != StatusConfirmed {
			continue
		}
		until := int(truncateToDay(c.Date).Sub(today).Hours() / 24)
		if until >= 0 && until <= days {
			out = append(out, c)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Date     *time.Time
	Location *string
	Category *string
	Notes    *string
}

// Update corrige los datos generales de la competencia. Las inscripciones
// y el estado tienen sus propias operaciones.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Competition, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Competition{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Competition{}, ErrInvalidInput
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Competition{}, ErrInvalidInput
		}
		c.Date = *in.Date
	}
	if in.Location != nil {
		c.Location = strings.TrimSpace(*in.Location)
	}
	if in.Category != nil {
		c.Category = strings.TrimSpace(*in.Category)
	}
	if in.Notes != nil {
		c.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Competition{}, err
	}
	return c, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Competition, error) {
	if !validStatus(status) {
		return Competition{}, ErrInvalidInput
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Competition{}, err
	}
	c.Status = status
	if err := s.repo.Update(ctx, c); err != nil {
		return Competition{}, err
	}
	return c, nil
}

type ResultInput struct {
	Result      string
	Placement   int
	Performance Performance
	Notes       string
}

// RecordResult registra el feedback post-evento de un caballo inscripto.
func (s *Service) RecordResult(ctx context.Context, id, horseID string, in ResultInput) (Competition, error) {
	if in.Placement < 0 {
		return Competition{}, ErrInvalidInput
	}
	if in.Performance != "" && in.Performance != PerformanceGood &&
		in.Performance != PerformanceFair && in.Performance != PerformancePoor {
		return Competition{}, ErrInvalidInput
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Competition{}, err
	}

	found := false
	for i := range c.Horses {
		if c.Horses[i].HorseID == horseID {
			c.Horses[i].Result = strings.TrimSpace(in.Result)
			c.Horses[i].Placement = in.Placement
			c.Horses[i].Performance = in.Performance
			c.Horses[i].Notes = strings.TrimSpace(in.Notes)
			found = true
			break
		}
	}
	if !found {
		return Competition{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return Competition{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// PurgeHorse implementa horses.Cascader: saca al caballo de todas las
// competencias; las que quedan sin caballos se eliminan por completo.
func (s *Service) PurgeHorse(ctx context.Context, horseID string) error {
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	for _, c := range all {
		kept := make([]Entry, 0, len(c.Horses))
		for _, e := range c.Horses {
			if e.HorseID != horseID {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(c.Horses) {
			continue
		}
		if len(kept) == 0 {
			if err := s.repo.Delete(ctx, c.ID); err != nil {
				return err
			}
			continue
		}
		c.Horses = kept
		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
