package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"horse-control/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, eng *Engine) {
	r.Route("/notifications", func(rr chi.Router) {
		rr.Get("/", listNotificationsHandler(svc))
		rr.Get("/unread-count", unreadCountHandler(svc))
		rr.Post("/generate", generateHandler(eng))
		rr.Post("/read-all", markAllReadHandler(svc))
		rr.Post("/{notificationID}/read", markReadHandler(svc))
		rr.Delete("/{notificationID}", deleteNotificationHandler(svc))
		rr.Delete("/", clearNotificationsHandler(svc))

		rr.Get("/settings", getSettingsHandler(svc))
		rr.Patch("/settings", updateSettingsHandler(svc))
	})
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

type generateResponse struct {
	Created int `json:"created"`
}

type updateSettingsRequest struct {
	Enabled              *bool `json:"enabled"`
	EventReminders       *bool `json:"event_reminders"`
	LowStockAlerts       *bool `json:"low_stock_alerts"`
	HealthAlerts         *bool `json:"health_alerts"`
	CompetitionReminders *bool `json:"competition_reminders"`
	ReproductionAlerts   *bool `json:"reproduction_alerts"`
}

// listNotificationsHandler godoc
// @Summary Listar notificaciones
// @Description Lista las notificaciones almacenadas, más nuevas primero.
// @Tags notifications
// @Produce json
// @Success 200 {array} notificationResponse
// @Router /notifications [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNotificationResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// unreadCountHandler godoc
// @Summary Conteo de no leídas
// @Tags notifications
// @Produce json
// @Success 200 {object} unreadCountResponse
// @Router /notifications/unread-count [get]
func unreadCountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.UnreadCount(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, unreadCountResponse{Unread: count})
	}
}

// generateHandler godoc
// @Summary Forzar una pasada del motor
// @Description Corre la generación ahora mismo, además del ciclo de 60s.
// @Tags notifications
// @Produce json
// @Success 200 {object} generateResponse
// @Failure 401 {string} string "unauthorized"
// @Router /notifications/generate [post]
func generateHandler(eng *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		created, err := eng.Generate(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, generateResponse{Created: created})
	}
}

// markReadHandler godoc
// @Summary Marcar una notificación como leída
// @Tags notifications
// @Produce json
// @Param notificationID path string true "ID de la notificación"
// @Success 200 {object} notificationResponse
// @Failure 404 {string} string "notification not found"
// @Router /notifications/{notificationID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.MarkRead(r.Context(), chi.URLParam(r, "notificationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toNotificationResponse(n))
	}
}

// markAllReadHandler godoc
// @Summary Marcar todas como leídas
// @Tags notifications
// @Success 204 {string} string "sin contenido"
// @Router /notifications/read-all [post]
func markAllReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.MarkAllRead(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteNotificationHandler godoc
// @Summary Borrar una notificación
// @Tags notifications
// @Param notificationID path string true "ID de la notificación"
// @Success 204 {string} string "sin contenido"
// @Failure 404 {string} string "notification not found"
// @Router /notifications/{notificationID} [delete]
func deleteNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "notificationID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// clearNotificationsHandler godoc
// @Summary Vaciar la lista de notificaciones
// @Tags notifications
// @Success 204 {string} string "sin contenido"
// @Router /notifications [delete]
func clearNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearAll(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// getSettingsHandler godoc
// @Summary Configuración de generación
// @Tags notifications
// @Produce json
// @Success 200 {object} Settings
// @Router /notifications/settings [get]
func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Settings(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// updateSettingsHandler godoc
// @Summary Actualizar configuración de generación
// @Description PATCH parcial: los campos ausentes no se tocan.
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body updateSettingsRequest true "Toggles a cambiar"
// @Success 200 {object} Settings
// @Failure 401 {string} string "unauthorized"
// @Router /notifications/settings [patch]
func updateSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		var req updateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		cfg, err := svc.UpdateSettings(r.Context(), SettingsInput{
			Enabled:              req.Enabled,
			EventReminders:       req.EventReminders,
			LowStockAlerts:       req.LowStockAlerts,
			HealthAlerts:         req.HealthAlerts,
			CompetitionReminders: req.CompetitionReminders,
			ReproductionAlerts:   req.ReproductionAlerts,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
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
		http.Error(w, "notification not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
