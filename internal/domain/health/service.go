package health

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
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

type CreateInput struct {
	Type         EventType
	Title        string
	Description  string
	Date         time.Time
	TimeOfDay    string
	Veterinarian string
	Cost         float64
}

func (s *Service) Create(ctx context.Context, horseID string, in CreateInput) (Event, error) {
	if strings.TrimSpace(horseID) == "" {
		return Event{}, ErrInvalidInput
	}
	if !validType(in.Type) {
		return Event{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Event{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Event{}, ErrInvalidInput
	}
	if in.Cost < 0 {
		return Event{}, ErrInvalidInput
	}

	e := Event{
		ID:           uuid.NewString(),
		HorseID:      horseID,
		Type:         in.Type,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Date:         in.Date,
		TimeOfDay:    strings.TrimSpace(in.TimeOfDay),
		Status:       EventStatusScheduled,
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Cost:         in.Cost,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByHorse(ctx context.Context, horseID string) ([]Event, error) {
	return s.repo.ListByHorse(ctx, horseID)
}

// ListScheduled devuelve los eventos agendados, para la agenda y el
// generador de notificaciones.
func (s *Service) ListScheduled(ctx context.Context) ([]Event, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(all))
	for _, e := range all {
		if e.Status == EventStatusScheduled {
			out = append(out, e)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Type         *EventType
	Title        *string
	Description  *string
	Date         *time.Time
	TimeOfDay    *string
	Veterinarian *string
	Cost         *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	if in.Type != nil {
		if !validType(*in.Type) {
			return Event{}, ErrInvalidInput
		}
		e.Type = *in.Type
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return Event{}, ErrInvalidInput
		}
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Event{}, ErrInvalidInput
		}
		e.Date = *in.Date
	}
	if in.TimeOfDay != nil {
		e.TimeOfDay = strings.TrimSpace(*in.TimeOfDay)
	}
	if in.Veterinarian != nil {
		e.Veterinarian = strings.TrimSpace(*in.Veterinarian)
	}
	if in.Cost != nil {
		if *in.Cost < 0 {
			return Event{}, ErrInvalidInput
		}
		e.Cost = *in.Cost
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status EventStatus) (Event, error) {
	if !validStatus(status) {
		return Event{}, ErrInvalidInput
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	e.Status = status
	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// PurgeHorse implementa horses.Cascader.
func (s *Service) PurgeHorse(ctx context.Context, horseID string) error {
	return s.repo.DeleteByHorse(ctx, horseID)
}
