package handler

import (
	"net/http"
	"time"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/order"
	"github.com/go-chi/chi/v5"
)

// ReportsHandler serves service-period reporting derived from the order set.
type ReportsHandler struct {
	tracker *order.Tracker
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(tracker *order.Tracker) *ReportsHandler {
	return &ReportsHandler{tracker: tracker}
}

// RegisterRoutes registers report endpoints on the given Chi router.
// Expected to be mounted at /reports (MANAGER only).
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
}

type summaryResponse struct {
	TotalOrders              int            `json:"total_orders"`
	CountsByStatus           map[string]int `json:"counts_by_status"`
	DelayedCount             int            `json:"delayed_count"`
	AverageCompletionMinutes float64        `json:"average_completion_minutes"`
}

// Summary handles GET /reports/summary. Everything here is recomputed from
// the order set on each call; nothing is stored redundantly.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	orders := h.tracker.List()

	counts := map[string]int{
		enum.OrderStatusPending:   0,
		enum.OrderStatusPreparing: 0,
		enum.OrderStatusReady:     0,
		enum.OrderStatusDelivered: 0,
	}
	delayed := 0
	for _, o := range orders {
		counts[o.Status]++
		if h.tracker.IsDelayed(o, now) {
			delayed++
		}
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalOrders:              len(orders),
		CountsByStatus:           counts,
		DelayedCount:             delayed,
		AverageCompletionMinutes: h.tracker.AverageCompletionTime().Minutes(),
	})
}
