package competitions

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
	r.Route("/competitions", func(cr chi.Router) {
		cr.Post("/", createCompetitionHandler(svc, horsesSvc))
		cr.Get("/", listCompetitionsHandler(svc))
		cr.Get("/{competitionID}", getCompetitionHandler(svc))
		cr.Patch("/{competitionID}", updateCompetitionHandler(svc))
		cr.Post("/{competitionID}/status", updateStatusHandler(svc))
		cr.Post("/{competitionID}/results/{horseID}", recordResultHandler(svc))
		cr.Delete("/{competitionID}", deleteCompetitionHandler(svc))
	})
}

type createCompetitionRequest struct {
	Name     string   `json:"name"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Location string   `json:"location"`
	Category string   `json:"category"`
	HorseIDs []string `json:"horse_ids"`
	Notes    string   `json:"notes"`
}

type updateCompetitionRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Date     *string `json:"date"` // YYYY-MM-DD
	Location *string `json:"location"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"registered,confirmed,completed,cancelled"`
}

type recordResultRequest struct {
	Result      string      `json:"result"`
	Placement   int         `json:"placement"`
	Performance Performance `json:"performance" enums:"good,fair,poor"`
	Notes       string      `json:"notes"`
}

type entryResponse struct {
	HorseID     string      `json:"horse_id"`
	HorseName   string      `json:"horse_name"`
	Result      string      `json:"result,omitempty"`
	Placement   int         `json:"placement,omitempty"`
	Performance Performance `json:"performance,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

type competitionResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`
	Location  string          `json:"location,omitempty"`
	Category  string          `json:"category,omitempty"`
	Horses    []entryResponse `json:"horses"`
	Status    Status          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// createCompetitionHandler godoc
// @Summary Crear competencia
// @Description Crea una competencia con los caballos indicados. El nombre de cada caballo queda congelado como snapshot al inscribir.
// @Tags competitions
// @Accept json
// @Produce json
// @Param payload body createCompetitionRequest true "Datos de la competencia"
// @Success 201 {object} competitionResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "horse not found"
// @Router /competitions [post]
func createCompetitionHandler(svc *Service, horsesSvc *horses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req createCompetitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		// Resolver nombres ahora: quedan como snapshot en la inscripción.
		entries := make([]EntryInput, 0, len(req.HorseIDs))
		for _, id := range req.HorseIDs {
			h, err := horsesSvc.GetByID(r.Context(), id)
			if err != nil {
				http.Error(w, "horse not found: "+id, http.StatusNotFound)
				return
			}
			entries = append(entries, EntryInput{HorseID: h.ID, HorseName: h.Name})
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Date:     date,
			Location: req.Location,
			Category: req.Category,
			Entries:  entries,
			Notes:    req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toCompetitionResponse(c))
	}
}

// listCompetitionsHandler godoc
// @Summary Listar competencias
// @Tags competitions
// @Produce json
// @Success 200 {array} competitionResponse
// @Router /competitions [get]
func listCompetitionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]competitionResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCompetitionResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCompetitionHandler godoc
// @Summary Detalle de una competencia
// @Tags competitions
// @Produce json
// @Param competitionID path string true "ID de la competencia"
// @Success 200 {object} competitionResponse
// @Failure 404 {string} string "competition not found"
// @Router /competitions/{competitionID} [get]
func getCompetitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "competitionID"))
		if err != nil {
			http.Error(w, "competition not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toCompetitionResponse(c))
	}
}

// updateCompetitionHandler godoc
// @Summary Actualizar competencia
// @Description Corrige nombre, fecha, lugar, categoría o notas. Las inscripciones y el estado tienen sus propias rutas.
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path string true "ID de la competencia"
// @Param payload body updateCompetitionRequest true "Campos a actualizar"
// @Success 200 {object} competitionResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "competition not found"
// @Router /competitions/{competitionID} [patch]
func updateCompetitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateCompetitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:     req.Name,
			Location: req.Location,
			Category: req.Category,
			Notes:    req.Notes,
		}
		if req.Date != nil {
			d, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "competitionID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCompetitionResponse(c))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de la competencia
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path string true "ID de la competencia"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} competitionResponse
// @Failure 400 {string} string "estado inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "competition not found"
// @Router /competitions/{competitionID}/status [post]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "competitionID"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCompetitionResponse(c))
	}
}

// recordResultHandler godoc
// @Summary Registrar resultado de un caballo
// @Description Registra el feedback post-evento (puesto, resultado, calificación) de un caballo inscripto.
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path string true "ID de la competencia"
// @Param horseID path string true "ID del caballo inscripto"
// @Param payload body recordResultRequest true "Feedback"
// @Success 200 {object} competitionResponse
// @Failure 400 {string} string "caballo no inscripto / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "competition not found"
// @Router /competitions/{competitionID}/results/{horseID} [post]
func recordResultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req recordResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.RecordResult(r.Context(), chi.URLParam(r, "competitionID"), chi.URLParam(r, "horseID"), ResultInput{
			Result:      req.Result,
			Placement:   req.Placement,
			Performance: req.Performance,
			Notes:       req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCompetitionResponse(c))
	}
}

// deleteCompetitionHandler godoc
// @Summary Eliminar competencia
// @Tags competitions
// @Param competitionID path string true "ID de la competencia"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "competition not found"
// @Router /competitions/{competitionID} [delete]
func deleteCompetitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "competitionID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCompetitionResponse(c Competition) competitionResponse {
	entries := make([]entryResponse, 0, len(c.Horses))
	for _, e := range c.Horses {
		entries = append(entries, entryResponse{
			HorseID:     e.HorseID,
			HorseName:   e.HorseName,
			Result:      e.Result,
			Placement:   e.Placement,
			Performance: e.Performance,
			Notes:       e.Notes,
		})
	}
	return competitionResponse{
		ID:        c.ID,
		Name:      c.Name,
		Date:      c.Date,
		Location:  c.Location,
		Category:  c.Category,
		Horses:    entries,
		Status:    c.Status,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
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
		http.Error(w, "competition not found", http.StatusNotFound)
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
