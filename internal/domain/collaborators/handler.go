package collaborators

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
	r.Route("/collaborators", func(cr chi.Router) {
		cr.Post("/", createCollaboratorHandler(svc))
		cr.Get("/", listCollaboratorsHandler(svc))
		cr.Get("/{collaboratorID}", getCollaboratorHandler(svc))
		cr.Patch("/{collaboratorID}", updateCollaboratorHandler(svc))
		cr.Post("/{collaboratorID}/toggle-status", toggleStatusHandler(svc))
		cr.Delete("/{collaboratorID}", deleteCollaboratorHandler(svc))
	})
}

type createCollaboratorRequest struct {
	Name          string `json:"name"`
	Role          Role   `json:"role" enums:"groom,veterinarian,farrier,instructor,trainer,administrator,security,general_services,driver,other"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	AdmissionDate string `json:"admission_date"` // YYYY-MM-DD
	Notes         string `json:"notes"`
}

type updateCollaboratorRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name          *string `json:"name"`
	Role          *Role   `json:"role"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	AdmissionDate *string `json:"admission_date"` // YYYY-MM-DD
	Status        *Status `json:"status" enums:"active,inactive"`
	Notes         *string `json:"notes"`
}

type collaboratorResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	AdmissionDate *time.Time `json:"admission_date,omitempty"`
	Status        Status     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// createCollaboratorHandler godoc
// @Summary Registrar colaborador
// @Description Da de alta un colaborador del haras. Nombre y función son obligatorios; el estado inicial es activo.
// @Tags collaborators
// @Accept json
// @Produce json
// @Param payload body createCollaboratorRequest true "Datos del colaborador"
// @Success 201 {object} collaboratorResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /collaborators [post]
func createCollaboratorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req createCollaboratorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Name:  req.Name,
			Role:  req.Role,
			Phone: req.Phone,
			Email: req.Email,
			Notes: req.Notes,
		}
		if strings.TrimSpace(req.AdmissionDate) != "" {
			d, err := time.Parse("2006-01-02", req.AdmissionDate)
			if err != nil {
				http.Error(w, "admission_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.AdmissionDate = &d
		}

		c, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCollaboratorResponse(c))
	}
}

// listCollaboratorsHandler godoc
// @Summary Listar colaboradores
// @Description Lista los colaboradores, opcionalmente filtrados por función con ?role=.
// @Tags collaborators
// @Produce json
// @Param role query string false "Filtrar por función"
// @Success 200 {array} collaboratorResponse
// @Router /collaborators [get]
func listCollaboratorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := Role(strings.TrimSpace(r.URL.Query().Get("role")))
		if role != "" && !validRole(role) {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), role)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]collaboratorResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCollaboratorResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCollaboratorHandler godoc
// @Summary Detalle de un colaborador
// @Tags collaborators
// @Produce json
// @Param collaboratorID path string true "ID del colaborador"
// @Success 200 {object} collaboratorResponse
// @Failure 404 {string} string "collaborator not found"
// @Router /collaborators/{collaboratorID} [get]
func getCollaboratorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "collaboratorID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCollaboratorResponse(c))
	}
}

// updateCollaboratorHandler godoc
// @Summary Actualizar colaborador
// @Tags collaborators
// @Accept json
// @Produce json
// @Param collaboratorID path string true "ID del colaborador"
// @Param payload body updateCollaboratorRequest true "Campos a actualizar"
// @Success 200 {object} collaboratorResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "collaborator not found"
// @Router /collaborators/{collaboratorID} [patch]
func updateCollaboratorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateCollaboratorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:   req.Name,
			Role:   req.Role,
			Phone:  req.Phone,
			Email:  req.Email,
			Status: req.Status,
			Notes:  req.Notes,
		}
		if req.AdmissionDate != nil {
			d, err := time.Parse("2006-01-02", *req.AdmissionDate)
			if err != nil {
				http.Error(w, "admission_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.AdmissionDate = &d
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "collaboratorID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCollaboratorResponse(c))
	}
}

// toggleStatusHandler godoc
// @Summary Alternar estado activo/inactivo
// @Tags collaborators
// @Produce json
// @Param collaboratorID path string true "ID del colaborador"
// @Success 200 {object} collaboratorResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "collaborator not found"
// @Router /collaborators/{collaboratorID}/toggle-status [post]
func toggleStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		c, err := svc.ToggleStatus(r.Context(), chi.URLParam(r, "collaboratorID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCollaboratorResponse(c))
	}
}

// deleteCollaboratorHandler godoc
// @Summary Eliminar colaborador
// @Tags collaborators
// @Param collaboratorID path string true "ID del colaborador"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "collaborator not found"
// @Router /collaborators/{collaboratorID} [delete]
func deleteCollaboratorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "collaboratorID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCollaboratorResponse(c Collaborator) collaboratorResponse {
	return collaboratorResponse{
		ID:            c.ID,
		Name:          c.Name,
		Role:          c.Role,
		Phone:         c.Phone,
		Email:         c.Email,
		AdmissionDate: c.AdmissionDate,
		Status:        c.Status,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
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
		http.Error(w, "collaborator not found", http.StatusNotFound)
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
