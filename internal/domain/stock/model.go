package stock

import "time"

// Category define la categoría del ítem de inventario.
type Category string

const (
	CategoryMedication Category = "medication"
	CategoryFeed       Category = "feed"
	CategorySupplement Category = "supplement"
	CategoryEquipment  Category = "equipment"
	CategoryHygiene    Category = "hygiene"
	CategoryOther      Category = "other"
)

func validCategory(c Category) bool {
	switch c {
	case CategoryMedication, CategoryFeed, CategorySupplement,
		CategoryEquipment, CategoryHygiene, CategoryOther:
		return true
	}
	return false
}

// Item es una línea de inventario. Quantity nunca baja de cero.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Category    Category `json:"category"`
	Quantity    int      `json:"quantity"`
	Unit        string   `json:"unit"`
	MinQuantity int      `json:"minQuantity"`

	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLow indica si el ítem está en o por debajo del mínimo.
func (i Item) IsLow() bool {
	return i.Quantity <= i.MinQuantity
}
