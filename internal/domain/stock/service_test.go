package stock

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Item
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Item{}}
}

func (r *testRepo) Create(ctx context.Context, i Item) error {
	if i.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[i.ID] = i
	return nil
}

func (r *testRepo) Update(ctx context.Context, i Item) error {
	if _, ok := r.byID[i.ID]; !ok {
		return ErrNotFound
	}
	r.byID[i.ID] = i
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Item, error) {
	i, ok := r.byID[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return i, nil
}

func (r *testRepo) List(ctx context.Context) ([]Item, error) {
	out := make([]Item, 0, len(r.byID))
	for _, i := range r.byID {
		out = append(out, i)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type testLedger struct {
	entries []LedgerEntry
}

func (l *testLedger) RecordStockEntry(ctx context.Context, e LedgerEntry) error {
	l.entries = append(l.entries, e)
	return nil
}

func newFixture(t *testing.T) (*Service, *testRepo, *testLedger) {
	t.Helper()
	repo := newTestRepo()
	ledger := &testLedger{}
	svc := NewService(repo, ledger)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, ledger
}

func seedItem(t *testing.T, svc *Service, qty int) Item {
	t.Helper()
	i, err := svc.Create(context.Background(), CreateInput{
		Name:        "Ração Premium",
		Category:    CategoryFeed,
		Quantity:    qty,
		Unit:        "kg",
		MinQuantity: 5,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return i
}

// -------------------------
// Operate
// -------------------------

func TestOperate_PurchaseAdjustsStockAndLedger(t *testing.T) {
	svc, repo, ledger := newFixture(t)
	ctx := context.Background()
	item := seedItem(t, svc, 3)

	got, err := svc.Operate(ctx, OperateInput{
		StockItemID: item.ID,
		Quantity:    10,
		UnitPrice:   5.00,
		Type:        OperationPurchase,
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Quantity != 13 {
		t.Fatalf("quantity = %d, want 13", got.Quantity)
	}

	if len(ledger.entries) != 1 {
		t.Fatalf("expected exactly 1 ledger entry, got %d", len(ledger.entries))
	}
	e := ledger.entries[0]
	if e.Income {
		t.Fatalf("purchase must be an expense entry")
	}
	if e.Amount != 50.00 {
		t.Fatalf("amount = %v, want 50.00", e.Amount)
	}
	if e.Category != LedgerCategoryPurchase {
		t.Fatalf("category = %q, want %q", e.Category, LedgerCategoryPurchase)
	}
	if e.StockItemID != item.ID {
		t.Fatalf("entry must reference the stock item")
	}

	stored, _ := repo.GetByID(ctx, item.ID)
	if stored.Quantity != 13 {
		t.Fatalf("stored quantity = %d, want 13", stored.Quantity)
	}
}

func TestOperate_SaleBeyondStockMutatesNothing(t *testing.T) {
	svc, repo, ledger := newFixture(t)
	ctx := context.Background()
	item := seedItem(t, svc, 4)

	_, err := svc.Operate(ctx, OperateInput{
		StockItemID: item.ID,
		Quantity:    5,
		UnitPrice:   2.00,
		Type:        OperationSale,
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, item.ID)
	if stored.Quantity != 4 {
		t.Fatalf("quantity must stay 4, got %d", stored.Quantity)
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("ledger must stay untouched, got %d entries", len(ledger.entries))
	}
}

func TestOperate_SaleRecordsIncome(t *testing.T) {
	svc, _, ledger := newFixture(t)
	ctx := context.Background()
	item := seedItem(t, svc, 10)

	got, err := svc.Operate(ctx, OperateInput{
		StockItemID: item.ID,
		Quantity:    4,
		UnitPrice:   3.50,
		Type:        OperationSale,
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Quantity != 6 {
		t.Fatalf("quantity = %d, want 6", got.Quantity)
	}

	if len(ledger.entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger.entries))
	}
	e := ledger.entries[0]
	if !e.Income || e.Amount != 14.00 || e.Category != LedgerCategorySale {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestOperate_RejectsInvalidInput(t *testing.T) {
	svc, _, ledger := newFixture(t)
	ctx := context.Background()
	item := seedItem(t, svc, 10)

	cases := []OperateInput{
		{StockItemID: item.ID, Quantity: 0, UnitPrice: 1, Type: OperationPurchase, Date: time.Now()},
		{StockItemID: item.ID, Quantity: 1, UnitPrice: 0, Type: OperationPurchase, Date: time.Now()},
		{StockItemID: item.ID, Quantity: 1, UnitPrice: 1, Type: "donation", Date: time.Now()},
		{StockItemID: item.ID, Quantity: 1, UnitPrice: 1, Type: OperationPurchase},
	}
	for i, in := range cases {
		if _, err := svc.Operate(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("ledger must stay untouched")
	}
}

// -------------------------
// AdjustQuantity / LowStock
// -------------------------

func TestAdjustQuantity_ClampsAtZero(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()
	item := seedItem(t, svc, 3)

	got, err := svc.AdjustQuantity(ctx, item.ID, -10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Quantity != 0 {
		t.Fatalf("quantity = %d, want 0", got.Quantity)
	}
}

func TestLowStock_ThresholdIsInclusive(t *testing.T) {
	svc, _, _ := newFixture(t)
	ctx := context.Background()

	atMin := seedItem(t, svc, 5)   // MinQuantity = 5
	_ = seedItem(t, svc, 6)        // por encima del mínimo
	empty := seedItem(t, svc, 0)

	low, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 low items, got %d", len(low))
	}
	ids := map[string]bool{low[0].ID: true, low[1].ID: true}
	if !ids[atMin.ID] || !ids[empty.ID] {
		t.Fatalf("expected the at-minimum and empty items, got %v", ids)
	}
}
