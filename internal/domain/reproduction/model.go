package reproduction

import "time"

// Record es una etapa del ciclo reproductivo de una yegua.
// MareName y StallionName son snapshots tomados al crear el registro.
// ParentID encadena una gestación con su inseminación de origen y un
// nacimiento con su gestación (el linaje completo son 3 registros).
type Record struct {
	ID   string     `json:"id"`
	Type RecordType `json:"type"`

	MareID   string `json:"mareId"`
	MareName string `json:"mareName"`

	StallionID   string `json:"stallionId,omitempty"`
	StallionName string `json:"stallionName,omitempty"`

	Date              time.Time  `json:"date"`
	ExpectedBirthDate *time.Time `json:"expectedBirthDate,omitempty"`

	Status       Status `json:"status"`
	Veterinarian string `json:"veterinarian,omitempty"`
	Notes        string `json:"notes,omitempty"`

	ParentID string `json:"parentId,omitempty"`

	// Solo en registros de tipo birth.
	FoalName string  `json:"foalName,omitempty"`
	FoalSex  FoalSex `json:"foalSex,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Terminal indica si el registro ya no admite transiciones.
func (r Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}
