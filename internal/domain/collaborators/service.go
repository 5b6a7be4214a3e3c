package collaborators

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("collaborator not found")
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
	Name          string
	Role          Role
	Phone         string
	Email         string
	AdmissionDate *time.Time
	Notes         string
}

// Create da de alta un colaborador. Nombre y función son obligatorios;
// el estado inicial siempre es activo.
func (s *Service) Create(ctx context.Context, in CreateInput) (Collaborator, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Collaborator{}, ErrInvalidInput
	}
	if !validRole(in.Role) {
		return Collaborator{}, ErrInvalidInput
	}

	now := s.now()
	c := Collaborator{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Role:          in.Role,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		AdmissionDate: in.AdmissionDate,
		Status:        StatusActive,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Collaborator{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Collaborator, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Collaborator{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve los colaboradores, opcionalmente filtrados por función.
func (s *Service) List(ctx context.Context, role Role) ([]Collaborator, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return all, nil
	}
	out := make([]Collaborator, 0, len(all))
	for _, c := range all {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name          *string
	Role          *Role
	Phone         *string
	Email         *string
	AdmissionDate *time.Time
	Status        *Status
	Notes         *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Collaborator, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Collaborator{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Collaborator{}, ErrInvalidInput
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return Collaborator{}, ErrInvalidInput
		}
		c.Role = *in.Role
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.AdmissionDate != nil {
		c.AdmissionDate = in.AdmissionDate
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return Collaborator{}, ErrInvalidInput
		}
		c.Status = *in.Status
	}
	if in.Notes != nil {
		c.Notes = strings.TrimSpace(*in.Notes)
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Collaborator{}, err
	}
	return c, nil
}

// ToggleStatus alterna entre activo e inactivo.
func (s *Service) ToggleStatus(ctx context.Context, id string) (Collaborator, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Collaborator{}, err
	}
	if c.Status == StatusActive {
		c.Status = StatusInactive
	} else {
		c.Status = StatusActive
	}
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Collaborator{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
