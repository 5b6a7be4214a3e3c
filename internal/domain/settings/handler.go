package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"horse-control/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/settings", func(rr chi.Router) {
		rr.Get("/", getSettingsHandler(svc))
		rr.Patch("/", updateSettingsHandler(svc))
		rr.Post("/reset", resetSettingsHandler(svc))
	})
}

type updateSettingsRequest struct {
	FarmName   *string `json:"farm_name"`
	Currency   *string `json:"currency"`
	DateFormat *string `json:"date_format"`
	Language   *string `json:"language"`
	Theme      *string `json:"theme"`
}

// getSettingsHandler godoc
// @Summary Preferencias de la aplicación
// @Tags settings
// @Produce json
// @Success 200 {object} AppSettings
// @Router /settings [get]
func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.Get(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// updateSettingsHandler godoc
// @Summary Actualizar preferencias
// @Description PATCH parcial: los campos ausentes no se tocan.
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body updateSettingsRequest true "Campos a cambiar"
// @Success 200 {object} AppSettings
// @Failure 401 {string} string "unauthorized"
// @Router /settings [patch]
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
		cfg, err := svc.Update(r.Context(), UpdateInput{
			FarmName:   req.FarmName,
			Currency:   req.Currency,
			DateFormat: req.DateFormat,
			Language:   req.Language,
			Theme:      req.Theme,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// resetSettingsHandler godoc
// @Summary Volver a los valores por defecto
// @Tags settings
// @Produce json
// @Success 200 {object} AppSettings
// @Failure 401 {string} string "unauthorized"
// @Router /settings/reset [post]
func resetSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		cfg, err := svc.Reset(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
