package notifications

import "time"

// Type define la severidad de la notificación.
// @Enum info, warning, success, error
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

func validType(t Type) bool {
	switch t {
	case TypeInfo, TypeWarning, TypeSuccess, TypeError:
		return true
	}
	return false
}

// Notification es una alerta materializada por el motor de generación.
// DedupKey identifica la condición que la originó (id de entidad +
// categoría + bucket de día cuando aplica): el motor nunca inserta dos
// notificaciones con la misma clave.
type Notification struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`

	Link     string `json:"link,omitempty"`
	DedupKey string `json:"dedupKey,omitempty"`

	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings controla la generación: Enabled apaga todo el motor, los
// demás flags apagan una categoría a la vez.
type Settings struct {
	Enabled              bool `json:"enabled"`
	EventReminders       bool `json:"eventReminders"`
	LowStockAlerts       bool `json:"lowStockAlerts"`
	HealthAlerts         bool `json:"healthAlerts"`
	CompetitionReminders bool `json:"competitionReminders"`
	ReproductionAlerts   bool `json:"reproductionAlerts"`
}

// DefaultSettings es el estado inicial: todo habilitado.
func DefaultSettings() Settings {
	return Settings{
		Enabled:              true,
		EventReminders:       true,
		LowStockAlerts:       true,
		HealthAlerts:         true,
		CompetitionReminders: true,
		ReproductionAlerts:   true,
	}
}
