package finance

import "time"

// TransactionType define el sentido del movimiento.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction es una entrada del libro financiero.
// RelatedStockItemID referencia al ítem de stock que la originó, si aplica.
type Transaction struct {
	ID string `json:"id"`

	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`

	RelatedStockItemID string `json:"relatedStockItemId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Summary agrupa los totales derivados del libro. Nunca se persiste.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
