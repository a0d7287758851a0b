package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartHandler handles the per-session cart endpoints used by the customer
// ordering view and the waiter view.
type CartHandler struct {
	carts   *cart.Registry
	taxRate decimal.Decimal
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Registry, taxRate decimal.Decimal) *CartHandler {
	return &CartHandler{carts: carts, taxRate: taxRate}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
// Expected to be mounted inside a session-scoped subrouter: /sessions/{sid}/cart
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/items", h.AddItem)
	r.Patch("/items/{lid}", h.SetQuantity)
	r.Delete("/items/{lid}", h.RemoveItem)
	r.Delete("/", h.Clear)
}

// --- Request / Response types ---

type addItemRequest struct {
	CatalogID string `json:"catalog_id"`
	Note      string `json:"note"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ID        uuid.UUID `json:"id"`
	CatalogID uuid.UUID `json:"catalog_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
}

type cartResponse struct {
	Lines            []cartLineResponse `json:"lines"`
	Subtotal         string             `json:"subtotal"`
	Tax              string             `json:"tax"`
	Total            string             `json:"total"`
	EstimatedMinutes int                `json:"estimated_minutes"`
}

// --- Handlers ---

// Get handles GET /sessions/{sid}/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(chi.URLParam(r, "sid"))
	writeJSON(w, http.StatusOK, h.toCartResponse(c))
}

// AddItem handles POST /sessions/{sid}/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	catalogID, err := uuid.Parse(req.CatalogID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid catalog_id"})
		return
	}

	c := h.carts.Get(chi.URLParam(r, "sid"))
	if _, err := c.AddItem(catalogID, req.Note); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.toCartResponse(c))
}

// SetQuantity handles PATCH /sessions/{sid}/cart/items/{lid}.
// A quantity of 0 removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid line ID"})
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c := h.carts.Get(chi.URLParam(r, "sid"))
	if err := c.SetQuantity(lineID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.toCartResponse(c))
}

// RemoveItem handles DELETE /sessions/{sid}/cart/items/{lid}.
// Removal is idempotent; an absent line still returns the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid line ID"})
		return
	}

	c := h.carts.Get(chi.URLParam(r, "sid"))
	c.RemoveItem(lineID)
	writeJSON(w, http.StatusOK, h.toCartResponse(c))
}

// Clear handles DELETE /sessions/{sid}/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(chi.URLParam(r, "sid"))
	c.Clear()
	writeJSON(w, http.StatusOK, h.toCartResponse(c))
}

// --- Helpers ---

func (h *CartHandler) toCartResponse(c *cart.Cart) cartResponse {
	lines := c.Lines()
	resp := cartResponse{
		Lines:            make([]cartLineResponse, len(lines)),
		Subtotal:         c.Subtotal().StringFixed(2),
		Tax:              c.Tax(h.taxRate).StringFixed(2),
		Total:            c.Total(h.taxRate).StringFixed(2),
		EstimatedMinutes: c.EstimatedTime(),
	}
	for i, l := range lines {
		resp.Lines[i] = cartLineResponse{
			ID:        l.ID,
			CatalogID: l.CatalogID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Note:      l.Note,
		}
	}
	return resp
}
