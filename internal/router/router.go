package router

import (
	"net/http"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/catalog"
	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/handler"
	mw "github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/order"
	"github.com/comanda-pos/api/internal/staff"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, cat *catalog.Catalog, carts *cart.Registry, tracker *order.Tracker, registry *staff.Registry, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the dashboard frontends
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(registry, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/channels/{channel}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Menu
		menuHandler := handler.NewMenuHandler(cat)
		r.Route("/menu", menuHandler.RegisterRoutes)

		// Carts and order submission, scoped to one table/session
		cartHandler := handler.NewCartHandler(carts, cfg.TaxRate)
		orderHandler := handler.NewOrderHandler(tracker, carts)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Route("/cart", cartHandler.RegisterRoutes)
			orderHandler.RegisterSessionRoutes(r)
		})

		// Orders
		r.Route("/orders", orderHandler.RegisterRoutes)

		// Kitchen display board
		kitchenHandler := handler.NewKitchenHandler(tracker, orderHandler)
		r.Route("/kitchen", kitchenHandler.RegisterRoutes)

		// Reports (MANAGER only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.StaffRoleManager))
			reportsHandler := handler.NewReportsHandler(tracker)
			r.Route("/reports", reportsHandler.RegisterRoutes)
		})
	})

	return r
}
