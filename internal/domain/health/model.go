package health

import "time"

// Event representa un evento de salud agendado o realizado para un caballo.
// La referencia al caballo es débil: si el caballo se borra, sus eventos
// se purgan en cascada (ver horses.Cascader).
type Event struct {
	ID      string `json:"id"`
	HorseID string `json:"horseId"`

	Type  EventType `json:"type"`
	Title string    `json:"title"`

	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	TimeOfDay   string    `json:"time,omitempty"` // "14:00", informativo

	Status       EventStatus `json:"status"`
	Veterinarian string      `json:"veterinarian,omitempty"`
	Cost         float64     `json:"cost,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
