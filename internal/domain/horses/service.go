package horses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("horse not found")
)

// Cascader elimina los registros que dependen de un caballo borrado
// (eventos de salud, reproducción, inscripciones en competencias).
type Cascader interface {
	PurgeHorse(ctx context.Context, horseID string) error
}

type Service struct {
	repo     Repository
	cascades []Cascader
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// OnDelete registra los colaboradores de cascada. El orden de registro
// es el orden de ejecución.
func (s *Service) OnDelete(c ...Cascader) {
	s.cascades = append(s.cascades, c...)
}

type CreateInput struct {
	Name      string
	Breed     string
	Color     string
	Sex       Sex
	Status    HealthStatus
	BirthDate *time.Time
	Pedigree  *Pedigree
	Notes     string
	Favorite  bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Horse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Horse{}, ErrInvalidInput
	}
	if !validSex(in.Sex) {
		return Horse{}, ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = StatusHealthy
	}
	if !validStatus(status) {
		return Horse{}, ErrInvalidInput
	}

	now := s.now()
	h := Horse{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Breed:      strings.TrimSpace(in.Breed),
		Color:      strings.TrimSpace(in.Color),
		Sex:        in.Sex,
		Status:     status,
		BirthDate:  in.BirthDate,
		Pedigree:   in.Pedigree,
		Notes:      strings.TrimSpace(in.Notes),
		IsFavorite: in.Favorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Horse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Horse, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Breed     *string
	Color     *string
	Sex       *Sex
	Status    *HealthStatus
	BirthDate *time.Time
	Pedigree  *Pedigree
	Notes     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Horse, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Horse{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Horse{}, ErrInvalidInput
		}
		h.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		h.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Color != nil {
		h.Color = strings.TrimSpace(*in.Color)
	}
	if in.Sex != nil {
		if !validSex(*in.Sex) {
			return Horse{}, ErrInvalidInput
		}
		h.Sex = *in.Sex
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return Horse{}, ErrInvalidInput
		}
		h.Status = *in.Status
	}
	if in.BirthDate != nil {
		h.BirthDate = in.BirthDate
	}
	if in.Pedigree != nil {
		h.Pedigree = in.Pedigree
	}
	if in.Notes != nil {
		h.Notes = strings.TrimSpace(*in.Notes)
	}

	h.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, id string) (Horse, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Horse{}, err
	}
	h.IsFavorite = !h.IsFavorite
	h.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, h); err != nil {
		return Horse{}, err
	}
	return h, nil
}

// Delete borra el caballo y ejecuta la cascada completa:
// eventos de salud, registros de reproducción (yegua o garañón)
// e inscripciones en competencias (las que quedan vacías se eliminan).
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, c := range s.cascades {
		if err := c.PurgeHorse(ctx, id); err != nil {
			return fmt.Errorf("cascade delete horse %s: %w", id, err)
		}
	}
	return nil
}
