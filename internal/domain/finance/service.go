package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"horse-control/internal/domain/stock"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("transaction not found")
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
	Type               TransactionType
	Category           string
	Description        string
	Amount             float64
	Date               time.Time
	RelatedStockItemID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Transaction, error) {
	if in.Type != TypeIncome && in.Type != TypeExpense {
		return Transaction{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Category) == "" {
		return Transaction{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Transaction{}, ErrInvalidInput
	}
	if in.Amount <= 0 {
		return Transaction{}, ErrInvalidInput
	}

	t := Transaction{
		ID:                 uuid.NewString(),
		Type:               in.Type,
		Category:           strings.TrimSpace(in.Category),
		Description:        strings.TrimSpace(in.Description),
		Amount:             in.Amount,
		Date:               in.Date,
		RelatedStockItemID: in.RelatedStockItemID,
		CreatedAt:          s.now(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary calcula totales de ingresos, gastos y balance.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, t := range all {
		switch t.Type {
		case TypeIncome:
			sum.Income += t.Amount
		case TypeExpense:
			sum.Expense += t.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense
	return sum, nil
}

// RecordStockEntry implementa stock.Ledger: cada operación de
// compra/venta de stock produce exactamente una transacción.
func (s *Service) RecordStockEntry(ctx context.Context, e stock.LedgerEntry) error {
	typ := TypeExpense
	if e.Income {
		typ = TypeIncome
	}
	_, err := s.Create(ctx, CreateInput{
		Type:               typ,
		Category:           e.Category,
		Description:        e.Description,
		Amount:             e.Amount,
		Date:               e.Date,
		RelatedStockItemID: e.StockItemID,
	})
	return err
}
