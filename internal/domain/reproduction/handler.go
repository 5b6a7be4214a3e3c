package reproduction

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
	r.Route("/reproductions", func(rr chi.Router) {
		rr.Post("/inseminations", startInseminationHandler(svc))
		rr.Get("/", listRecordsHandler(svc))
		rr.Get("/{recordID}", getRecordHandler(svc))
		rr.Post("/{recordID}/confirm", confirmInseminationHandler(svc))
		rr.Post("/{recordID}/birth", finalizeGestationHandler(svc))
		rr.Post("/{recordID}/cancel", cancelRecordHandler(svc))
	})
}

type startInseminationRequest struct {
	MareID       string `json:"mare_id"`
	StallionID   string `json:"stallion_id"`
	Date         string `json:"date"` // YYYY-MM-DD
	Veterinarian string `json:"veterinarian"`
	Notes        string `json:"notes"`
}

type finalizeGestationRequest struct {
	FoalName string  `json:"foal_name"`
	FoalSex  FoalSex `json:"foal_sex" enums:"male,female"`
	Notes    string  `json:"notes"`
}

type recordResponse struct {
	ID                string     `json:"id"`
	Type              RecordType `json:"type"`
	MareID            string     `json:"mare_id"`
	MareName          string     `json:"mare_name"`
	StallionID        string     `json:"stallion_id,omitempty"`
	StallionName      string     `json:"stallion_name,omitempty"`
	Date              time.Time  `json:"date"`
	ExpectedBirthDate *time.Time `json:"expected_birth_date,omitempty"`
	Status            Status     `json:"status"`
	Veterinarian      string     `json:"veterinarian,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	ParentID          string     `json:"parent_id,omitempty"`
	FoalName          string     `json:"foal_name,omitempty"`
	FoalSex           FoalSex    `json:"foal_sex,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type confirmResponse struct {
	Insemination recordResponse `json:"insemination"`
	Gestation    recordResponse `json:"gestation"`
}

type birthResponse struct {
	Gestation recordResponse `json:"gestation"`
	Birth     recordResponse `json:"birth"`
}

// startInseminationHandler godoc
// @Summary Registrar inseminación
// @Description Abre un linaje reproductivo nuevo. La yegua debe existir y ser hembra; la fecha no puede ser futura. La fecha esperada de nacimiento se calcula como date + 340 días.
// @Tags reproduction
// @Accept json
// @Produce json
// @Param payload body startInseminationRequest true "Datos de la inseminación"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "mare not found"
// @Router /reproductions/inseminations [post]
func startInseminationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req startInseminationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.StartInsemination(r.Context(), StartInseminationInput{
			MareID:       req.MareID,
			StallionID:   req.StallionID,
			Date:         date,
			Veterinarian: req.Veterinarian,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de reproducción
// @Description Lista todos los registros; con mare_id filtra por yegua.
// @Tags reproduction
// @Produce json
// @Param mare_id query string false "Filtrar por yegua"
// @Success 200 {array} recordResponse
// @Router /reproductions [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Record
			err   error
		)
		if mareID := strings.TrimSpace(r.URL.Query().Get("mare_id")); mareID != "" {
			items, err = svc.ListByMare(r.Context(), mareID)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecordHandler godoc
// @Summary Detalle de un registro
// @Tags reproduction
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 404 {string} string "record not found"
// @Router /reproductions/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// confirmInseminationHandler godoc
// @Summary Confirmar inseminación
// @Description Cierra la inseminación (completed) y crea la gestación encadenada por parent_id. Solo vale sobre una inseminación en curso.
// @Tags reproduction
// @Produce json
// @Param recordID path string true "ID de la inseminación"
// @Success 200 {object} confirmResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "record not found"
// @Failure 409 {string} string "invalid lifecycle transition"
// @Router /reproductions/{recordID}/confirm [post]
func confirmInseminationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		res, err := svc.ConfirmInsemination(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, confirmResponse{
			Insemination: toRecordResponse(res.Insemination),
			Gestation:    toRecordResponse(res.Gestation),
		})
	}
}

// finalizeGestationHandler godoc
// @Summary Registrar nacimiento
// @Description Cierra la gestación y crea el registro de nacimiento (terminal de inmediato). Requiere nombre de potrillo no vacío.
// @Tags reproduction
// @Accept json
// @Produce json
// @Param recordID path string true "ID de la gestación"
// @Param payload body finalizeGestationRequest true "Datos del potrillo"
// @Success 200 {object} birthResponse
// @Failure 400 {string} string "foal_name vacío / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "record not found"
// @Failure 409 {string} string "invalid lifecycle transition"
// @Router /reproductions/{recordID}/birth [post]
func finalizeGestationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req finalizeGestationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.FinalizeGestation(r.Context(), chi.URLParam(r, "recordID"), FinalizeInput{
			FoalName: req.FoalName,
			FoalSex:  req.FoalSex,
			Notes:    req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, birthResponse{
			Gestation: toRecordResponse(res.Gestation),
			Birth:     toRecordResponse(res.Birth),
		})
	}
}

// cancelRecordHandler godoc
// @Summary Cancelar registro
// @Description Cancela un registro no terminal y corta el linaje: un registro cancelado no se retoma.
// @Tags reproduction
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "record not found"
// @Failure 409 {string} string "invalid lifecycle transition"
// @Router /reproductions/{recordID}/cancel [post]
func cancelRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		rec, err := svc.Cancel(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func toRecordResponse(r Record) recordResponse {
	return recordResponse{
		ID:                r.ID,
		Type:              r.Type,
		MareID:            r.MareID,
		MareName:          r.MareName,
		StallionID:        r.StallionID,
		StallionName:      r.StallionName,
		Date:              r.Date,
		ExpectedBirthDate: r.ExpectedBirthDate,
		Status:            r.Status,
		Veterinarian:      r.Veterinarian,
		Notes:             r.Notes,
		ParentID:          r.ParentID,
		FoalName:          r.FoalName,
		FoalSex:           r.FoalSex,
		CreatedAt:         r.CreatedAt,
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
		http.Error(w, "record not found", http.StatusNotFound)
	case errors.Is(err, ErrMareNotFound):
		http.Error(w, "mare not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, "invalid lifecycle transition", http.StatusConflict)
	case errors.Is(err, ErrNotAMare), errors.Is(err, ErrFutureDate), errors.Is(err, ErrInvalidInput):
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
