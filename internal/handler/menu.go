package handler

import (
	"net/http"

	"github.com/comanda-pos/api/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MenuHandler serves the read-only catalog to the dashboard views.
type MenuHandler struct {
	catalog *catalog.Catalog
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(cat *catalog.Catalog) *MenuHandler {
	return &MenuHandler{catalog: cat}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
// Expected to be mounted at /menu
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

type menuItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	UnitPrice       string    `json:"unit_price"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	Available       bool      `json:"available"`
}

// List handles GET /menu with optional ?category= and ?available=true filters.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	var items []catalog.Item
	switch {
	case r.URL.Query().Get("available") == "true":
		items = h.catalog.ListAvailable()
	case r.URL.Query().Get("category") != "":
		items = h.catalog.ListByCategory(r.URL.Query().Get("category"))
	default:
		items = h.catalog.List()
	}

	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = menuItemResponse{
			ID:              it.ID,
			Name:            it.Name,
			Category:        it.Category,
			UnitPrice:       it.UnitPrice.StringFixed(2),
			PrepTimeMinutes: it.PrepTimeMinutes,
			Available:       it.Available,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": resp})
}
