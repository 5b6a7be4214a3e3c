package horses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"horse-control/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/horses", func(hr chi.Router) {
		hr.Post("/", createHorseHandler(svc))
		hr.Get("/", listHorsesHandler(svc))
		hr.Get("/{horseID}", getHorseHandler(svc))
		hr.Patch("/{horseID}", updateHorseHandler(svc))
		hr.Delete("/{horseID}", deleteHorseHandler(svc))
		hr.Post("/{horseID}/favorite", toggleFavoriteHandler(svc))
	})
}

// createHorseRequest es el cuerpo para registrar un caballo.
type createHorseRequest struct {
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Color     string    `json:"color"`
	Sex       Sex       `json:"sex" enums:"male,female,gelded"`
	Status    HealthStatus `json:"status" enums:"healthy,in_treatment,under_observation"`
	BirthDate string    `json:"birth_date"` // YYYY-MM-DD
	Pedigree  *Pedigree `json:"pedigree"`
	Notes     string    `json:"notes"`
	Favorite  bool      `json:"favorite"`
}

type updateHorseRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string       `json:"name"`
	Breed     *string       `json:"breed"`
	Color     *string       `json:"color"`
	Sex       *Sex          `json:"sex"`
	Status    *HealthStatus `json:"status"`
	BirthDate *string       `json:"birth_date"` // YYYY-MM-DD
	Pedigree  *Pedigree     `json:"pedigree"`
	Notes     *string       `json:"notes"`
}

// horseResponse representa un caballo devuelto por la API.
// Age se calcula al momento de responder, nunca se persiste.
type horseResponse struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Breed      string       `json:"breed"`
	Color      string       `json:"color,omitempty"`
	Sex        Sex          `json:"sex"`
	Status     HealthStatus `json:"status"`
	Age        string       `json:"age"`
	BirthDate  *time.Time   `json:"birth_date,omitempty"`
	Pedigree   *Pedigree    `json:"pedigree,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	IsFavorite bool         `json:"is_favorite"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// createHorseHandler godoc
// @Summary Registrar caballo
// @Description Registra un caballo nuevo. Requiere usuario autenticado.
// @Tags horses
// @Accept json
// @Produce json
// @Param payload body createHorseRequest true "Datos del caballo"
// @Success 201 {object} horseResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /horses [post]
func createHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req createHorseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		h, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Breed:     req.Breed,
			Color:     req.Color,
			Sex:       req.Sex,
			Status:    req.Status,
			BirthDate: bd,
			Pedigree:  req.Pedigree,
			Notes:     req.Notes,
			Favorite:  req.Favorite,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toHorseResponse(h))
	}
}

// listHorsesHandler godoc
// @Summary Listar caballos
// @Tags horses
// @Produce json
// @Success 200 {array} horseResponse
// @Router /horses [get]
func listHorsesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]horseResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHorseResponse(h))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getHorseHandler godoc
// @Summary Detalle de un caballo
// @Tags horses
// @Produce json
// @Param horseID path string true "ID del caballo"
// @Success 200 {object} horseResponse
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [get]
func getHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "horseID"))
		if err != nil {
			http.Error(w, "horse not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

// updateHorseHandler godoc
// @Summary Actualizar caballo (PATCH)
// @Tags horses
// @Accept json
// @Produce json
// @Param horseID path string true "ID del caballo"
// @Param payload body updateHorseRequest true "Campos a actualizar"
// @Success 200 {object} horseResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [patch]
func updateHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateHorseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:     req.Name,
			Breed:    req.Breed,
			Color:    req.Color,
			Sex:      req.Sex,
			Status:   req.Status,
			Pedigree: req.Pedigree,
			Notes:    req.Notes,
		}
		if req.BirthDate != nil {
			bd, err := parseBirthDate(*req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = bd
		}

		h, err := svc.Update(r.Context(), chi.URLParam(r, "horseID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

// deleteHorseHandler godoc
// @Summary Eliminar caballo
// @Description Elimina el caballo y en cascada sus eventos de salud, registros de reproducción e inscripciones en competencias.
// @Tags horses
// @Param horseID path string true "ID del caballo"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID} [delete]
func deleteHorseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "horseID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleFavoriteHandler godoc
// @Summary Alternar favorito
// @Tags horses
// @Produce json
// @Param horseID path string true "ID del caballo"
// @Success 200 {object} horseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /horses/{horseID}/favorite [post]
func toggleFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		h, err := svc.ToggleFavorite(r.Context(), chi.URLParam(r, "horseID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHorseResponse(h))
	}
}

func parseBirthDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toHorseResponse(h Horse) horseResponse {
	return horseResponse{
		ID:         h.ID,
		Name:       h.Name,
		Breed:      h.Breed,
		Color:      h.Color,
		Sex:        h.Sex,
		Status:     h.Status,
		Age:        Age(h.BirthDate, time.Now()),
		BirthDate:  h.BirthDate,
		Pedigree:   h.Pedigree,
		Notes:      h.Notes,
		IsFavorite: h.IsFavorite,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
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
		http.Error(w, "horse not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
