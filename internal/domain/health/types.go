package health

// EventType define el tipo de evento de salud.
type EventType string

const (
	EventTypeVaccination EventType = "vaccination"
	EventTypeDeworming   EventType = "deworming"
	EventTypeFarrier     EventType = "farrier"
	EventTypeVeterinary  EventType = "veterinary"
	EventTypeMedication  EventType = "medication"
	EventTypeOther       EventType = "other"
)

// EventStatus define el estado del evento.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func validType(t EventType) bool {
	switch t {
	case EventTypeVaccination, EventTypeDeworming, EventTypeFarrier,
		EventTypeVeterinary, EventTypeMedication, EventTypeOther:
		return true
	}
	return false
}

func validStatus(s EventStatus) bool {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}
