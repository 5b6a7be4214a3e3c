package horses

import "time"

// Pedigree guarda la ascendencia declarada al registrar el caballo.
type Pedigree struct {
	Father   string `json:"father,omitempty"`
	Mother   string `json:"mother,omitempty"`
	Registry string `json:"registry,omitempty"`
}

// Horse representa un caballo registrado en el sistema.
// La edad nunca se persiste: se deriva de BirthDate al leer (ver age.go).
type Horse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Color string `json:"color,omitempty"`

	Sex    Sex          `json:"sex"`
	Status HealthStatus `json:"status"`

	BirthDate *time.Time `json:"birthDate,omitempty"`
	Pedigree  *Pedigree  `json:"pedigree,omitempty"`

	Notes      string `json:"notes,omitempty"`
	IsFavorite bool   `json:"isFavorite"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
