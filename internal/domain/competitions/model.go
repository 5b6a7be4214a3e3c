package competitions

import "time"

// Status define el estado de la competencia.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusConfirmed  Status = "confirmed"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func validStatus(s Status) bool {
	switch s {
	case StatusRegistered, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Performance es la calificación post-evento de un caballo.
type Performance string

const (
	PerformanceGood Performance = "good"
	PerformanceFair Performance = "fair"
	PerformancePoor Performance = "poor"
)

// Entry es la inscripción de un caballo en una competencia.
// HorseName es un snapshot tomado al inscribir: renombrar el caballo
// después no reescribe la historia de la competencia.
type Entry struct {
	HorseID   string `json:"horseId"`
	HorseName string `json:"horseName"`

	Result      string      `json:"result,omitempty"`
	Placement   int         `json:"placement,omitempty"`
	Performance Performance `json:"performance,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// Competition es un evento con una lista de caballos inscriptos.
type Competition struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`

	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`

	Horses []Entry `json:"horses"`
	Status Status  `json:"status"`
	Notes  string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
