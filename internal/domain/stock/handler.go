package stock

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
	r.Route("/stock", func(sr chi.Router) {
		sr.Post("/", createItemHandler(svc))
		sr.Get("/", listItemsHandler(svc))
		sr.Get("/low", lowStockHandler(svc))
		sr.Post("/operations", operateHandler(svc))
		sr.Get("/{itemID}", getItemHandler(svc))
		sr.Patch("/{itemID}", updateItemHandler(svc))
		sr.Delete("/{itemID}", deleteItemHandler(svc))
		sr.Post("/{itemID}/adjust", adjustQuantityHandler(svc))
	})
}

type createItemRequest struct {
	Name           string   `json:"name"`
	Category       Category `json:"category" enums:"medication,feed,supplement,equipment,hygiene,other"`
	Quantity       int      `json:"quantity"`
	Unit           string   `json:"unit"`
	MinQuantity    int      `json:"min_quantity"`
	ExpirationDate string   `json:"expiration_date"` // YYYY-MM-DD
	Location       string   `json:"location"`
	Notes          string   `json:"notes"`
}

type updateItemRequest struct {
	Name           *string   `json:"name"`
	Category       *Category `json:"category"`
	Unit           *string   `json:"unit"`
	MinQuantity    *int      `json:"min_quantity"`
	ExpirationDate *string   `json:"expiration_date"`
	Location       *string   `json:"location"`
	Notes          *string   `json:"notes"`
}

type adjustQuantityRequest struct {
	Amount int `json:"amount"`
}

// operateRequest es una compra o venta: mueve stock y asienta en el libro.
type operateRequest struct {
	StockItemID string        `json:"stock_item_id"`
	Quantity    int           `json:"quantity"`
	UnitPrice   float64       `json:"unit_price"`
	Type        OperationType `json:"type" enums:"purchase,sale"`
	Date        string        `json:"date"` // YYYY-MM-DD
	Description string        `json:"description"`
}

type itemResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       Category   `json:"category"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	MinQuantity    int        `json:"min_quantity"`
	Low            bool       `json:"low"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// createItemHandler godoc
// @Summary Crear ítem de inventario
// @Tags stock
// @Accept json
// @Produce json
// @Param payload body createItemRequest true "Datos del ítem"
// @Success 201 {object} itemResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /stock [post]
func createItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		exp, err := parseOptionalDate(req.ExpirationDate)
		if err != nil {
			http.Error(w, "expiration_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		i, err := svc.Create(r.Context(), CreateInput{
			Name:           req.Name,
			Category:       req.Category,
			Quantity:       req.Quantity,
			Unit:           req.Unit,
			MinQuantity:    req.MinQuantity,
			ExpirationDate: exp,
			Location:       req.Location,
			Notes:          req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toItemResponse(i))
	}
}

// listItemsHandler godoc
// @Summary Listar inventario
// @Tags stock
// @Produce json
// @Success 200 {array} itemResponse
// @Router /stock [get]
func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeItemList(w, items)
	}
}

// lowStockHandler godoc
// @Summary Ítems con stock bajo
// @Description Lista los ítems con cantidad en o por debajo del mínimo.
// @Tags stock
// @Produce json
// @Success 200 {array} itemResponse
// @Router /stock/low [get]
func lowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.LowStock(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeItemList(w, items)
	}
}

// getItemHandler godoc
// @Summary Detalle de un ítem
// @Tags stock
// @Produce json
// @Param itemID path string true "ID del ítem"
// @Success 200 {object} itemResponse
// @Failure 404 {string} string "stock item not found"
// @Router /stock/{itemID} [get]
func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, err := svc.GetByID(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			http.Error(w, "stock item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(i))
	}
}

// updateItemHandler godoc
// @Summary Actualizar ítem (PATCH)
// @Tags stock
// @Accept json
// @Produce json
// @Param itemID path string true "ID del ítem"
// @Param payload body updateItemRequest true "Campos a actualizar"
// @Success 200 {object} itemResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "stock item not found"
// @Router /stock/{itemID} [patch]
func updateItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req updateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			Category:    req.Category,
			Unit:        req.Unit,
			MinQuantity: req.MinQuantity,
			Location:    req.Location,
			Notes:       req.Notes,
		}
		if req.ExpirationDate != nil {
			exp, err := parseOptionalDate(*req.ExpirationDate)
			if err != nil {
				http.Error(w, "expiration_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.ExpirationDate = exp
		}

		i, err := svc.Update(r.Context(), chi.URLParam(r, "itemID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(i))
	}
}

// deleteItemHandler godoc
// @Summary Eliminar ítem
// @Tags stock
// @Param itemID path string true "ID del ítem"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "stock item not found"
// @Router /stock/{itemID} [delete]
func deleteItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// adjustQuantityHandler godoc
// @Summary Ajustar cantidad
// @Description Suma amount (puede ser negativo) a la cantidad; el resultado se recorta en cero.
// @Tags stock
// @Accept json
// @Produce json
// @Param itemID path string true "ID del ítem"
// @Param payload body adjustQuantityRequest true "Ajuste"
// @Success 200 {object} itemResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "stock item not found"
// @Router /stock/{itemID}/adjust [post]
func adjustQuantityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req adjustQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		i, err := svc.AdjustQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(i))
	}
}

// operateHandler godoc
// @Summary Compra o venta de stock
// @Description Ajusta el stock y asienta exactamente una transacción en el libro financiero. Una venta que excede la existencia se rechaza sin mutar nada.
// @Tags stock
// @Accept json
// @Produce json
// @Param payload body operateRequest true "Operación"
// @Success 200 {object} itemResponse
// @Failure 400 {string} string "reglas de negocio / insufficient stock"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "stock item not found"
// @Router /stock/operations [post]
func operateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}

		var req operateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		i, err := svc.Operate(r.Context(), OperateInput{
			StockItemID: req.StockItemID,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Type:        req.Type,
			Date:        date,
			Description: req.Description,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(i))
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toItemResponse(i Item) itemResponse {
	return itemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Category:       i.Category,
		Quantity:       i.Quantity,
		Unit:           i.Unit,
		MinQuantity:    i.MinQuantity,
		Low:            i.IsLow(),
		ExpirationDate: i.ExpirationDate,
		Location:       i.Location,
		Notes:          i.Notes,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func writeItemList(w http.ResponseWriter, items []Item) {
	out := make([]itemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
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
		http.Error(w, "stock item not found", http.StatusNotFound)
	case errors.Is(err, ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusBadRequest)
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
