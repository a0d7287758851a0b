package handler

import (
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/order"
	"github.com/go-chi/chi/v5"
)

// KitchenHandler serves the kitchen display board: the three working queues
// with delay flags.
type KitchenHandler struct {
	tracker *order.Tracker
	orders  *OrderHandler
}

// NewKitchenHandler creates a new KitchenHandler.
func NewKitchenHandler(tracker *order.Tracker, orders *OrderHandler) *KitchenHandler {
	return &KitchenHandler{tracker: tracker, orders: orders}
}

// RegisterRoutes registers kitchen endpoints on the given Chi router.
// Expected to be mounted at /kitchen
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/board", h.Board)
}

type kitchenBoardResponse struct {
	Pending   []orderResponse `json:"pending"`
	Preparing []orderResponse `json:"preparing"`
	Ready     []orderResponse `json:"ready"`
}

// Board handles GET /kitchen/board.
func (h *KitchenHandler) Board(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, kitchenBoardResponse{
		Pending:   h.queue(enum.OrderStatusPending, now),
		Preparing: h.queue(enum.OrderStatusPreparing, now),
		Ready:     h.queue(enum.OrderStatusReady, now),
	})
}

func (h *KitchenHandler) queue(status string, now time.Time) []orderResponse {
	orders := h.tracker.ListByStatus(status)
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = h.orders.toOrderResponse(o, now)
	}
	return resp
}
