package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comanda-pos/api/internal/auth"
	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/catalog"
	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/order"
	"github.com/comanda-pos/api/internal/router"
	"github.com/comanda-pos/api/internal/staff"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const testSecret = "test-secret"

// testEnv wires the full router against in-memory components, the way
// cmd/server does.
type testEnv struct {
	router   chi.Router
	tracker  *order.Tracker
	carts    *cart.Registry
	salmon   catalog.Item
	lemonade catalog.Item
	flan     catalog.Item
	tokens   map[string]string // role -> bearer token
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	salmon := catalog.Item{
		ID:              uuid.New(),
		Name:            "Grilled Salmon",
		Category:        enum.CategoryMains,
		UnitPrice:       mustDecimal(t, "18.99"),
		PrepTimeMinutes: 20,
		Available:       true,
	}
	lemonade := catalog.Item{
		ID:              uuid.New(),
		Name:            "Lemonade",
		Category:        enum.CategoryDrinks,
		UnitPrice:       mustDecimal(t, "3.50"),
		PrepTimeMinutes: 3,
		Available:       true,
	}
	flan := catalog.Item{
		ID:              uuid.New(),
		Name:            "Flan",
		Category:        enum.CategoryDesserts,
		UnitPrice:       mustDecimal(t, "5.40"),
		PrepTimeMinutes: 5,
		Available:       false,
	}
	cat := catalog.New([]catalog.Item{salmon, lemonade, flan})

	cfg := &config.Config{
		Port:               "0",
		JWTSecret:          testSecret,
		TaxRate:            mustDecimal(t, "0.16"),
		PrepBufferMinutes:  5,
		DelayBufferMinutes: 5,
	}

	registry := staff.NewRegistry()
	carts := cart.NewRegistry(cat, cfg.PrepBufferMinutes)
	tracker := order.NewTracker(cfg.TaxRate, cfg.DelayBufferMinutes)
	hub := ws.NewHub()
	go hub.Run()

	tokens := make(map[string]string)
	for _, role := range []string{enum.StaffRoleManager, enum.StaffRoleWaiter, enum.StaffRoleKitchen} {
		token, err := auth.GenerateToken(testSecret, uuid.New(), "Test "+role, role)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		tokens[role] = token
	}

	return &testEnv{
		router:   router.New(cfg, cat, carts, tracker, registry, hub),
		tracker:  tracker,
		carts:    carts,
		salmon:   salmon,
		lemonade: lemonade,
		flan:     flan,
		tokens:   tokens,
	}
}

// do performs a JSON request against the test router as the given role.
// An empty role sends no Authorization header.
func (e *testEnv) do(t *testing.T, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[role])
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rr.Body.String())
	}
}

// fillCart puts 1× salmon and 2× lemonade into a session's cart via HTTP.
func (e *testEnv) fillCart(t *testing.T, sid string) {
	t.Helper()
	for _, id := range []uuid.UUID{e.salmon.ID, e.lemonade.ID, e.lemonade.ID} {
		rr := e.do(t, http.MethodPost, "/sessions/"+sid+"/cart/items", enum.StaffRoleWaiter,
			map[string]string{"catalog_id": id.String()})
		if rr.Code != http.StatusOK {
			t.Fatalf("add item: status %d: %s", rr.Code, rr.Body.String())
		}
	}
}
