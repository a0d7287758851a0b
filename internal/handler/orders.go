package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderHandler handles order submission and lifecycle endpoints.
type OrderHandler struct {
	tracker *order.Tracker
	carts   *cart.Registry
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(tracker *order.Tracker, carts *cart.Registry) *OrderHandler {
	return &OrderHandler{tracker: tracker, carts: carts}
}

// RegisterSessionRoutes registers the submission endpoint.
// Expected to be mounted inside a session-scoped subrouter: /sessions/{sid}
func (h *OrderHandler) RegisterSessionRoutes(r chi.Router) {
	r.Post("/orders", h.Submit)
}

// RegisterRoutes registers order read/update endpoints.
// Expected to be mounted at /orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type submitOrderRequest struct {
	Table string `json:"table"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderLineResponse struct {
	CatalogID uuid.UUID `json:"catalog_id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
}

type orderResponse struct {
	ID               uuid.UUID           `json:"id"`
	OrderNumber      string              `json:"order_number"`
	Table            string              `json:"table"`
	StaffID          uuid.UUID           `json:"staff_id"`
	Status           string              `json:"status"`
	Lines            []orderLineResponse `json:"lines"`
	Subtotal         string              `json:"subtotal"`
	TaxAmount        string              `json:"tax_amount"`
	TotalAmount      string              `json:"total_amount"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	SubmittedAt      time.Time           `json:"submitted_at"`
	StatusChangedAt  time.Time           `json:"status_changed_at"`
	Delayed          bool                `json:"delayed"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

// --- Handlers ---

// Submit handles POST /sessions/{sid}/orders. The session's cart becomes an
// immutable order and is dropped from the registry on success.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	sid := chi.URLParam(r, "sid")

	// The table defaults to the session ID; waiters can override it.
	table := sid
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Table != "" {
		table = req.Table
	}

	c := h.carts.Get(sid)
	o, err := h.tracker.Submit(c, table, claims.StaffID)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.carts.Drop(sid)

	writeJSON(w, http.StatusCreated, h.toOrderResponse(o, time.Now()))
}

// List handles GET /orders with optional ?status= filter. Orders come back
// in submission order.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var orders []order.Order
	if s := r.URL.Query().Get("status"); s != "" {
		if !order.ValidStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		orders = h.tracker.ListByStatus(s)
	} else {
		orders = h.tracker.List()
	}

	now := time.Now()
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = h.toOrderResponse(o, now)
	}

	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	o, err := h.tracker.Get(orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, h.toOrderResponse(o, time.Now()))
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	o, err := h.tracker.UpdateStatus(orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, order.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		case errors.Is(err, order.ErrIllegalTransition):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, h.toOrderResponse(o, time.Now()))
}

// --- Helpers ---

func (h *OrderHandler) toOrderResponse(o order.Order, now time.Time) orderResponse {
	resp := orderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		Table:            o.Table,
		StaffID:          o.StaffID,
		Status:           o.Status,
		Lines:            make([]orderLineResponse, len(o.Lines)),
		Subtotal:         o.Subtotal.StringFixed(2),
		TaxAmount:        o.TaxAmount.StringFixed(2),
		TotalAmount:      o.TotalAmount.StringFixed(2),
		EstimatedMinutes: o.EstimatedTimeMinutes,
		SubmittedAt:      o.SubmittedAt,
		StatusChangedAt:  o.StatusChangedAt,
		Delayed:          h.tracker.IsDelayed(o, now),
	}
	for i, l := range o.Lines {
		resp.Lines[i] = orderLineResponse{
			CatalogID: l.CatalogID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
			Note:      l.Note,
		}
	}
	return resp
}
