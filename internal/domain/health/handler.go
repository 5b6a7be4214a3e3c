package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"horse-control/internal/domain/horses"
	"horse-control/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, horsesSvc *horses.Service) {
	r.Route("/horses/{horseID}/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc, horsesSvc))
		er.Get("/", listEventsByHorseHandler(svc, horsesSvc))
	})
	r.Route("/events", func(er chi.Router) {
		er.Get("/", listEventsHandler(svc))
		er.Patch("/{eventID}", updateEventHandler(svc))
		er.Post("/{eventID}/status", updateEventStatusHandler(svc))
		er.Delete("/{eventID}", deleteEventHandler(svc))
	})
}

// createEventRequest es el cuerpo para agendar un evento de salud.
type createEventRequest struct {
	Type         EventType `json:"type" enums:"vaccination,deworming,farrier,veterinary,medication,other"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Time         string    `json:"time"` // "14:00", opcional
	Veterinarian string    `json:"veterinarian"`
	Cost         float64   `json:"cost"`
}

type updateEventRequest struct {
	Type         *EventType `json:"type"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Date         *string    `json:"date"`
	Time         *string    `json:"time"`
	Veterinarian *string    `json:"veterinarian"`
	Cost         *float64   `json:"cost"`
}

type updateEventStatusRequest struct {
	Status EventStatus `json:"status" enums:"scheduled,completed,cancelled"`
}

type eventResponse struct {
	ID           string      `json:"id"`
	HorseID      string      `json:"horse_id"`
	Type         EventType   `json:"type"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Date         time.Time   `json:"date"`
	Time         string      `json:"time,omitempty"`
	Status       EventStatus `json:"status"`
	Veterinarian string      `json:"veterinarian,omitempty"`
	Cost         float64     `json:"cost,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// createEventHandler godoc
// @Summary Agendar evento de salud
// @Description Agenda un evento de salud para el caballo indicado.
// @Tags health
// @Accept json
// @Produce json
// @Param horseID path string true "ID del caballo"
// @Param payload body createEventRequest true "Datos del evento; date en formato YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/events [post]
func createEventHandler(svc *Service, horsesSvc *horses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		horseID := chi.URLParam(r, "horseID")
		if _, err := horsesSvc.GetByID(r.Context(), horseID); err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), horseID, CreateInput{
			Type:         req.Type,
			Title:        req.Title,
			Description:  req.Description,
			Date:         date,
			TimeOfDay:    req.Time,
			Veterinarian: req.Veterinarian,
			Cost:         req.Cost,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsByHorseHandler godoc
// @Summary Listar eventos de salud de un caballo
// @Tags health
// @Produce json
// @Param horseID path string true "ID del caballo"
// @Success 200 {array} eventResponse
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/events [get]
func listEventsByHorseHandler(svc *Service, horsesSvc *horses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		horseID := chi.URLParam(r, "horseID")
		if _, err := horsesSvc.GetByID(r.Context(), horseID); err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByHorse(r.Context(), horseID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeEventList(w, items)
	}
}

// listEventsHandler godoc
// @Summary Listar todos los eventos de salud (agenda)
// @Tags health
// @Produce json
// @Success 200 {array} eventResponse
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeEventList(w, items)
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento de salud (PATCH)
// @Tags health
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a actualizar"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID} [patch]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Type:         req.Type,
			Title:        req.Title,
			Description:  req.Description,
			TimeOfDay:    req.Time,
			Veterinarian: req.Veterinarian,
			Cost:         req.Cost,
		}
		if req.Date != nil {
			d, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "eventID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// updateEventStatusHandler godoc
// @Summary Cambiar estado de un evento
// @Description Marca un evento como completado o cancelado.
// @Tags health
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventStatusRequest true "Nuevo estado"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "estado inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID}/status [post]
func updateEventStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateEventStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "eventID"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// deleteEventHandler godoc
// @Summary Eliminar evento de salud
// @Tags health
// @Param eventID path string true "ID del evento"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "event not found"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "eventID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		HorseID:      e.HorseID,
		Type:         e.Type,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.TimeOfDay,
		Status:       e.Status,
		Veterinarian: e.Veterinarian,
		Cost:         e.Cost,
		CreatedAt:    e.CreatedAt,
	}
}

func writeEventList(w http.ResponseWriter, items []Event) {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func requireUser(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
