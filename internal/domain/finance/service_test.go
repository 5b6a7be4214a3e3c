package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"horse-control/internal/domain/stock"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Transaction
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Transaction{}}
}

func (r *testRepo) Create(ctx context.Context, t Transaction) error {
	if t.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Transaction, error) {
	out := make([]Transaction, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Transaction, error) {
	t, ok := r.byID[id]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return t, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newFixture(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

var testDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

// -------------------------
// Create / Summary
// -------------------------

func TestCreate_Validation(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	cases := []CreateInput{
		{Type: "loan", Category: "Feed", Amount: 10, Date: testDate},
		{Type: TypeExpense, Category: " ", Amount: 10, Date: testDate},
		{Type: TypeExpense, Category: "Feed", Amount: 0, Date: testDate},
		{Type: TypeExpense, Category: "Feed", Amount: -5, Date: testDate},
		{Type: TypeExpense, Category: "Feed", Amount: 10},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must stay untouched")
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	mustCreate := func(typ TransactionType, amount float64) {
		t.Helper()
		if _, err := svc.Create(ctx, CreateInput{Type: typ, Category: "General", Amount: amount, Date: testDate}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mustCreate(TypeIncome, 300)
	mustCreate(TypeIncome, 200)
	mustCreate(TypeExpense, 150)

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Income != 500 || sum.Expense != 150 || sum.Balance != 350 {
		t.Fatalf("summary = %+v", sum)
	}
}

// -------------------------
// Stock ledger bridge
// -------------------------

func TestRecordStockEntry_MapsDirectionToType(t *testing.T) {
	svc, repo := newFixture(t)
	ctx := context.Background()

	err := svc.RecordStockEntry(ctx, stock.LedgerEntry{
		Income:      false,
		Category:    stock.LedgerCategoryPurchase,
		Description: "Purchase: 10 kg of Ração",
		Amount:      50.00,
		Date:        testDate,
		StockItemID: "it-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = svc.RecordStockEntry(ctx, stock.LedgerEntry{
		Income:      true,
		Category:    stock.LedgerCategorySale,
		Amount:      14.00,
		Date:        testDate,
		StockItemID: "it-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, _ := repo.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(all))
	}
	byCat := map[string]Transaction{}
	for _, tx := range all {
		byCat[tx.Category] = tx
	}
	if byCat[stock.LedgerCategoryPurchase].Type != TypeExpense {
		t.Fatalf("purchase must be an expense")
	}
	if byCat[stock.LedgerCategorySale].Type != TypeIncome {
		t.Fatalf("sale must be an income")
	}
	if byCat[stock.LedgerCategoryPurchase].RelatedStockItemID != "it-1" {
		t.Fatalf("transaction must reference the stock item")
	}
}
