package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("stock item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Categorías fijas para las transacciones originadas en stock.
const (
	LedgerCategoryPurchase = "Stock (Purchase)"
	LedgerCategorySale     = "Stock (Sale)"
)

// Ledger registra en el libro financiero las operaciones de compra/venta.
// Lo implementa finance.Service; la interfaz vive acá para no invertir
// la dependencia.
type Ledger interface {
	RecordStockEntry(ctx context.Context, e LedgerEntry) error
}

// LedgerEntry es el asiento que produce una operación de stock.
type LedgerEntry struct {
	Income      bool // false = gasto (compra), true = ingreso (venta)
	Category    string
	Description string
	Amount      float64
	Date        time.Time
	StockItemID string
}

type Service struct {
	repo   Repository
	ledger Ledger
	now    func() time.Time
}

func NewService(repo Repository, ledger Ledger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name           string
	Category       Category
	Quantity       int
	Unit           string
	MinQuantity    int
	ExpirationDate *time.Time
	Location       string
	Notes          string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Item{}, ErrInvalidInput
	}
	if !validCategory(in.Category) {
		return Item{}, ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return Item{}, ErrInvalidInput
	}

	now := s.now()
	i := Item{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Category:       in.Category,
		Quantity:       in.Quantity,
		Unit:           strings.TrimSpace(in.Unit),
		MinQuantity:    in.MinQuantity,
		ExpirationDate: in.ExpirationDate,
		Location:       strings.TrimSpace(in.Location),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return Item{}, err
	}
	return i, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// LowStock devuelve los ítems en o por debajo de su mínimo.
func (s *Service) LowStock(ctx context.Context) ([]Item, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0)
	for _, i := range all {
		if i.IsLow() {
			out = append(out, i)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string
	Category       *Category
	Unit           *string
	MinQuantity    *int
	ExpirationDate *time.Time
	Location       *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Item{}, ErrInvalidInput
		}
		i.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if !validCategory(*in.Category) {
			return Item{}, ErrInvalidInput
		}
		i.Category = *in.Category
	}
	if in.Unit != nil {
		i.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return Item{}, ErrInvalidInput
		}
		i.MinQuantity = *in.MinQuantity
	}
	if in.ExpirationDate != nil {
		i.ExpirationDate = in.ExpirationDate
	}
	if in.Location != nil {
		i.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		i.Notes = strings.TrimSpace(*in.Notes)
	}

	i.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, i); err != nil {
		return Item{}, err
	}
	return i, nil
}

// AdjustQuantity suma amount (puede ser negativo) a la cantidad actual.
// El resultado se recorta en cero, nunca queda negativo.
func (s *Service) AdjustQuantity(ctx context.Context, id string, amount int) (Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	i.Quantity += amount
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	i.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, i); err != nil {
		return Item{}, err
	}
	return i, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// OperationType define el sentido de la operación de stock.
type OperationType string

const (
	OperationPurchase OperationType = "purchase"
	OperationSale     OperationType = "sale"
)

type OperateInput struct {
	StockItemID string
	Quantity    int
	UnitPrice   float64
	Type        OperationType
	Date        time.Time
	Description string
}

// Operate ajusta el stock y asienta exactamente una transacción en el
// libro. Valida todo antes de escribir: una venta que excede la
// existencia no muta nada.
func (s *Service) Operate(ctx context.Context, in OperateInput) (Item, error) {
	if in.Quantity <= 0 || in.UnitPrice <= 0 {
		return Item{}, ErrInvalidInput
	}
	if in.Type != OperationPurchase && in.Type != OperationSale {
		return Item{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Item{}, ErrInvalidInput
	}

	i, err := s.repo.GetByID(ctx, in.StockItemID)
	if err != nil {
		return Item{}, err
	}

	change := in.Quantity
	if in.Type == OperationSale {
		if in.Quantity > i.Quantity {
			return Item{}, ErrInsufficientStock
		}
		change = -in.Quantity
	}

	i.Quantity += change
	i.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, i); err != nil {
		return Item{}, err
	}

	entry := LedgerEntry{
		Income:      in.Type == OperationSale,
		Amount:      float64(in.Quantity) * in.UnitPrice,
		Date:        in.Date,
		StockItemID: i.ID,
	}
	if in.Type == OperationPurchase {
		entry.Category = LedgerCategoryPurchase
		entry.Description = in.Description
		if entry.Description == "" {
			entry.Description = fmt.Sprintf("Purchase: %d %s of %s", in.Quantity, i.Unit, i.Name)
		}
	} else {
		entry.Category = LedgerCategorySale
		entry.Description = in.Description
		if entry.Description == "" {
			entry.Description = fmt.Sprintf("Sale: %d %s of %s", in.Quantity, i.Unit, i.Name)
		}
	}

	if err := s.ledger.RecordStockEntry(ctx, entry); err != nil {
		return Item{}, fmt.Errorf("record ledger entry: %w", err)
	}
	return i, nil
}
