package reproduction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"horse-control/internal/domain/horses"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("reproduction record not found")
	ErrMareNotFound      = errors.New("mare not found")
	ErrNotAMare          = errors.New("horse is not a mare")
	ErrFutureDate        = errors.New("date must not be in the future")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

// HorseDirectory resuelve caballos por id. Lo implementa horses.Service.
type HorseDirectory interface {
	GetByID(ctx context.Context, id string) (horses.Horse, error)
}

type Service struct {
	repo   Repository
	horses HorseDirectory
	now    func() time.Time
}

func NewService(repo Repository, dir HorseDirectory) *Service {
	return &Service{
		repo:   repo,
		horses: dir,
		now:    time.Now,
	}
}

type StartInseminationInput struct {
	MareID       string
	StallionID   string
	Date         time.Time
	Veterinarian string
	Notes        string
}

// StartInsemination abre un linaje nuevo: valida la yegua, calcula la
// fecha esperada de nacimiento (date + 340 días) y crea el registro de
// inseminación en curso, sin padre.
func (s *Service) StartInsemination(ctx context.Context, in StartInseminationInput) (Record, error) {
	mare, err := s.horses.GetByID(ctx, in.MareID)
	if err != nil {
		return Record{}, ErrMareNotFound
	}
	if mare.Sex != horses.SexFemale {
		return Record{}, ErrNotAMare
	}
	if in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if in.Date.After(s.now()) {
		return Record{}, ErrFutureDate
	}

	r := Record{
		ID:           uuid.NewString(),
		Type:         TypeInsemination,
		MareID:       mare.ID,
		MareName:     mare.Name,
		Date:         in.Date,
		Status:       StatusInProgress,
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    s.now(),
	}

	expected := in.Date.AddDate(0, 0, GestationDays)
	r.ExpectedBirthDate = &expected

	if strings.TrimSpace(in.StallionID) != "" {
		stallion, err := s.horses.GetByID(ctx, in.StallionID)
		if err != nil {
			return Record{}, fmt.Errorf("stallion: %w", err)
		}
		r.StallionID = stallion.ID
		r.StallionName = stallion.Name
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ConfirmResult agrupa los dos registros que deja una confirmación.
type ConfirmResult struct {
	Insemination Record
	Gestation    Record
}

// ConfirmInsemination cierra la inseminación (completed) y crea la
// gestación encadenada. Solo vale sobre una inseminación en curso:
// confirmarla dos veces falla la segunda vez.
func (s *Service) ConfirmInsemination(ctx context.Context, id string) (ConfirmResult, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ConfirmResult{}, err
	}
	if r.Type != TypeInsemination || r.Status != StatusInProgress {
		return ConfirmResult{}, ErrInvalidTransition
	}

	gestation := Record{
		ID:                uuid.NewString(),
		Type:              TypeGestation,
		MareID:            r.MareID,
		MareName:          r.MareName,
		StallionID:        r.StallionID,
		StallionName:      r.StallionName,
		Date:              r.Date,
		ExpectedBirthDate: r.ExpectedBirthDate,
		Status:            StatusInProgress,
		Veterinarian:      r.Veterinarian,
		ParentID:          r.ID,
		CreatedAt:         s.now(),
	}

	// Primero el registro terminal, después el nuevo: si la segunda
	// escritura falla queda una inseminación completed sin gestación,
	// nunca dos registros accionables del mismo linaje.
	r.Status = StatusCompleted
	if err := s.repo.Update(ctx, r); err != nil {
		return ConfirmResult{}, err
	}
	if err := s.repo.Create(ctx, gestation); err != nil {
		return ConfirmResult{}, err
	}

	return ConfirmResult{Insemination: r, Gestation: gestation}, nil
}

type FinalizeInput struct {
	FoalName string
	FoalSex  FoalSex
	Notes    string
}

// FinalizeResult agrupa los dos registros que deja un nacimiento.
type FinalizeResult struct {
	Gestation Record
	Birth     Record
}

// FinalizeGestation cierra la gestación y crea el registro de nacimiento,
// que nace ya completed: es terminal de inmediato.
func (s *Service) FinalizeGestation(ctx context.Context, id string, in FinalizeInput) (FinalizeResult, error) {
	if strings.TrimSpace(in.FoalName) == "" {
		return FinalizeResult{}, ErrInvalidInput
	}
	if in.FoalSex != FoalMale && in.FoalSex != FoalFemale {
		return FinalizeResult{}, ErrInvalidInput
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return FinalizeResult{}, err
	}
	if r.Type != TypeGestation || r.Status != StatusInProgress {
		return FinalizeResult{}, ErrInvalidTransition
	}

	now := s.now()
	birth := Record{
		ID:           uuid.NewString(),
		Type:         TypeBirth,
		MareID:       r.MareID,
		MareName:     r.MareName,
		StallionID:   r.StallionID,
		StallionName: r.StallionName,
		Date:         now,
		Status:       StatusCompleted,
		ParentID:     r.ID,
		FoalName:     strings.TrimSpace(in.FoalName),
		FoalSex:      in.FoalSex,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
	}

	r.Status = StatusCompleted
	if err := s.repo.Update(ctx, r); err != nil {
		return FinalizeResult{}, err
	}
	if err := s.repo.Create(ctx, birth); err != nil {
		return FinalizeResult{}, err
	}

	return FinalizeResult{Gestation: r, Birth: birth}, nil
}

// Cancel corta el linaje: vale desde cualquier estado no terminal y el
// registro cancelado no se puede retomar.
func (s *Service) Cancel(ctx context.Context, id string) (Record, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if r.Terminal() {
		return Record{}, ErrInvalidTransition
	}

	r.Status = StatusCancelled
	if err := s.repo.Update(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByMare(ctx context.Context, mareID string) ([]Record, error) {
	return s.repo.ListByMare(ctx, mareID)
}

// ActiveGestations devuelve las gestaciones en curso. Alimenta al
// generador de notificaciones de nacimiento.
func (s *Service) ActiveGestations(ctx context.Context) ([]Record, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0)
	for _, r := range all {
		if r.Type == TypeGestation && r.Status == StatusInProgress {
			out = append(out, r)
		}
	}
	return out, nil
}

// PurgeHorse implementa horses.Cascader: borra los registros donde el
// caballo aparece como yegua o garañón.
func (s *Service) PurgeHorse(ctx context.Context, horseID string) error {
	return s.repo.DeleteByHorse(ctx, horseID)
}
