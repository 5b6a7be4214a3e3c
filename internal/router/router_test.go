package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horse-control/internal/adapters/storage/memory"
	"horse-control/internal/platform/logger"
	"horse-control/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := router.New(router.Options{
		Log:     logger.New(logger.Options{Level: logger.Error}),
		Store:   memory.NewStore(),
		DevAuth: true,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	ts := httptest.NewServer(app.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, base, method, path, userID string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, base+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, raw
}

func decodeID(t *testing.T, raw []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.ID == "" {
		t.Fatalf("expected an id in response, got %s", string(raw))
	}
	return out.ID
}

func TestHTTP_EndToEnd_HorseLifecycle(t *testing.T) {
	ts := newTestServer(t)
	user := "user-1"

	// 1) Registrar caballos
	st, body := doReq(t, ts.URL, "POST", "/horses", user, map[string]any{
		"name":  "Estrela",
		"breed": "Mangalarga",
		"sex":   "female",
	})
	if st != http.StatusCreated {
		t.Fatalf("create mare: expected 201, got %d body=%s", st, string(body))
	}
	mareID := decodeID(t, body)

	st, body = doReq(t, ts.URL, "POST", "/horses", user, map[string]any{
		"name":  "Trovão",
		"breed": "Quarto de Milha",
		"sex":   "male",
	})
	if st != http.StatusCreated {
		t.Fatalf("create stallion: expected 201, got %d", st)
	}
	stallionID := decodeID(t, body)

	// 2) Sin usuario no se puede crear
	st, _ = doReq(t, ts.URL, "POST", "/horses", "", map[string]any{
		"name": "Anónimo", "sex": "male",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	// 3) Agendar evento de salud para la yegua
	st, body = doReq(t, ts.URL, "POST", "/horses/"+mareID+"/events", user, map[string]any{
		"type":  "vaccination",
		"title": "Vacina da gripe",
		"date":  time.Now().Format("2006-01-02"),
	})
	if st != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d body=%s", st, string(body))
	}

	// 4) Linaje reproductivo completo
	st, body = doReq(t, ts.URL, "POST", "/reproductions/inseminations", user, map[string]any{
		"mare_id":     mareID,
		"stallion_id": stallionID,
		"date":        time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
	})
	if st != http.StatusCreated {
		t.Fatalf("insemination: expected 201, got %d body=%s", st, string(body))
	}
	insID := decodeID(t, body)

	st, body = doReq(t, ts.URL, "POST", "/reproductions/"+insID+"/confirm", user, nil)
	if st != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d body=%s", st, string(body))
	}
	var conf struct {
		Gestation struct {
			ID string `json:"id"`
		} `json:"gestation"`
	}
	if err := json.Unmarshal(body, &conf); err != nil || conf.Gestation.ID == "" {
		t.Fatalf("expected gestation in confirm response, got %s", string(body))
	}

	// Confirmar dos veces falla
	st, _ = doReq(t, ts.URL, "POST", "/reproductions/"+insID+"/confirm", user, nil)
	if st != http.StatusConflict {
		t.Fatalf("double confirm: expected 409, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/reproductions/"+conf.Gestation.ID+"/birth", user, map[string]any{
		"foal_name": "Relâmpago",
		"foal_sex":  "male",
	})
	if st != http.StatusOK {
		t.Fatalf("birth: expected 200, got %d body=%s", st, string(body))
	}

	// 5) Borrar la yegua dispara la cascada
	st, _ = doReq(t, ts.URL, "DELETE", "/horses/"+mareID, user, nil)
	if st != http.StatusNoContent {
		t.Fatalf("delete horse: expected 204, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/reproductions?mare_id="+mareID, user, nil)
	if st != http.StatusOK {
		t.Fatalf("list reproductions: expected 200, got %d", st)
	}
	var recs []json.RawMessage
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("cascade must purge reproduction records, got %d", len(recs))
	}
}

func TestHTTP_EndToEnd_StockFinanceBridge(t *testing.T) {
	ts := newTestServer(t)
	user := "user-1"

	st, body := doReq(t, ts.URL, "POST", "/stock", user, map[string]any{
		"name":         "Ração Premium",
		"category":     "feed",
		"quantity":     3,
		"unit":         "kg",
		"min_quantity": 5,
	})
	if st != http.StatusCreated {
		t.Fatalf("create item: expected 201, got %d body=%s", st, string(body))
	}
	itemID := decodeID(t, body)

	// Compra: 10 unidades a 5.00
	st, body = doReq(t, ts.URL, "POST", "/stock/operations", user, map[string]any{
		"stock_item_id": itemID,
		"quantity":      10,
		"unit_price":    5.00,
		"type":          "purchase",
		"date":          time.Now().Format("2006-01-02"),
	})
	if st != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d body=%s", st, string(body))
	}

	// Venta que excede el stock: rechazada, nada cambia
	st, _ = doReq(t, ts.URL, "POST", "/stock/operations", user, map[string]any{
		"stock_item_id": itemID,
		"quantity":      100,
		"unit_price":    2.00,
		"type":          "sale",
		"date":          time.Now().Format("2006-01-02"),
	})
	if st != http.StatusBadRequest {
		t.Fatalf("oversale: expected 400, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/stock/"+itemID, user, nil)
	if st != http.StatusOK {
		t.Fatalf("get item: expected 200, got %d", st)
	}
	var item struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal(body, &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.Quantity != 13 {
		t.Fatalf("quantity = %d, want 13", item.Quantity)
	}

	st, body = doReq(t, ts.URL, "GET", "/transactions/summary", user, nil)
	if st != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", st)
	}
	var sum struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.Expense != 50.00 || sum.Income != 0 || sum.Balance != -50.00 {
		t.Fatalf("summary = %+v, want expense 50.00", sum)
	}
}

func TestHTTP_EndToEnd_Notifications(t *testing.T) {
	ts := newTestServer(t)
	user := "user-1"

	// Ítem bajo mínimo
	st, body := doReq(t, ts.URL, "POST", "/stock", user, map[string]any{
		"name":         "Vermífugo",
		"category":     "medication",
		"quantity":     1,
		"unit":         "dose",
		"min_quantity": 3,
	})
	if st != http.StatusCreated {
		t.Fatalf("create item: expected 201, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/notifications/generate", user, nil)
	if st != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d body=%s", st, string(body))
	}
	var gen struct {
		Created int `json:"created"`
	}
	if err := json.Unmarshal(body, &gen); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gen.Created != 1 {
		t.Fatalf("created = %d, want 1", gen.Created)
	}

	// Segunda pasada sin cambios: nada nuevo
	st, body = doReq(t, ts.URL, "POST", "/notifications/generate", user, nil)
	if st != http.StatusOK {
		t.Fatalf("generate again: expected 200, got %d", st)
	}
	if err := json.Unmarshal(body, &gen); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gen.Created != 0 {
		t.Fatalf("second pass created = %d, want 0", gen.Created)
	}

	st, body = doReq(t, ts.URL, "GET", "/notifications/unread-count", user, nil)
	if st != http.StatusOK {
		t.Fatalf("unread count: expected 200, got %d", st)
	}
	var count struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(body, &count); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if count.Unread != 1 {
		t.Fatalf("unread = %d, want 1", count.Unread)
	}
}
