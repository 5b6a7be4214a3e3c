package finance

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
	r.Route("/transactions", func(tr chi.Router) {
		tr.Post("/", createTransactionHandler(svc))
		tr.Get("/", listTransactionsHandler(svc))
		tr.Get("/summary", summaryHandler(svc))
		tr.Delete("/{transactionID}", deleteTransactionHandler(svc))
	})
}

type createTransactionRequest struct {
	Type        TransactionType `json:"type" enums:"income,expense"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

type transactionResponse struct {
	ID                 string          `json:"id"`
	Type               TransactionType `json:"type"`
	Category           string          `json:"category"`
	Description        string          `json:"description,omitempty"`
	Amount             float64         `json:"amount"`
	Date               time.Time       `json:"date"`
	RelatedStockItemID string          `json:"related_stock_item_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// createTransactionHandler godoc
// @Summary Registrar transacción
// @Description Registra un ingreso o gasto manual en el libro financiero.
// @Tags finance
// @Accept json
// @Produce json
// @Param payload body createTransactionRequest true "Datos de la transacción; amount debe ser > 0"
// @Success 201 {object} transactionResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /transactions [post]
func createTransactionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req createTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			Type:        req.Type,
			Category:    req.Category,
			Description: req.Description,
			Amount:      req.Amount,
			Date:        date,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toTransactionResponse(t))
	}
}

// listTransactionsHandler godoc
// @Summary Listar transacciones
// @Tags finance
// @Produce json
// @Success 200 {array} transactionResponse
// @Router /transactions [get]
func listTransactionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]transactionResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTransactionResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Resumen financiero
// @Description Totales de ingresos, gastos y balance.
// @Tags finance
// @Produce json
// @Success 200 {object} Summary
// @Router /transactions/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

// deleteTransactionHandler godoc
// @Summary Eliminar transacción
// @Tags finance
// @Param transactionID path string true "ID de la transacción"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "transaction not found"
// @Router /transactions/{transactionID} [delete]
func deleteTransactionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toTransactionResponse(t Transaction) transactionResponse {
	return transactionResponse{
		ID:                 t.ID,
		Type:               t.Type,
		Category:           t.Category,
		Description:        t.Description,
		Amount:             t.Amount,
		Date:               t.Date,
		RelatedStockItemID: t.RelatedStockItemID,
		CreatedAt:          t.CreatedAt,
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
