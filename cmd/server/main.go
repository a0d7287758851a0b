package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/catalog"
	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/order"
	"github.com/comanda-pos/api/internal/router"
	"github.com/comanda-pos/api/internal/staff"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.MenuPath)
	if err != nil {
		log.Fatalf("load menu from %s: %v (run cmd/seed to generate one)", cfg.MenuPath, err)
	}
	log.Printf("Loaded %d menu items from %s", cat.Len(), cfg.MenuPath)

	registry := staff.NewRegistry()
	seedStaff(registry)

	carts := cart.NewRegistry(cat, cfg.PrepBufferMinutes)
	tracker := order.NewTracker(cfg.TaxRate, cfg.DelayBufferMinutes)

	hub := ws.NewHub()
	go hub.Run()
	bridgeStatusEvents(tracker, hub)

	r := router.New(cfg, cat, carts, tracker, registry, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}

// bridgeStatusEvents pushes every order status change into the hub so the
// kitchen and floor dashboards update without polling.
func bridgeStatusEvents(tracker *order.Tracker, hub *ws.Hub) {
	tracker.OnStatusChanged(func(orderID uuid.UUID, from, to string) {
		o, err := tracker.Get(orderID)
		if err != nil {
			return
		}

		eventType := "order.status_changed"
		if from == "" {
			eventType = "order.submitted"
		}
		payload, err := json.Marshal(map[string]string{
			"order_id":     orderID.String(),
			"order_number": o.OrderNumber,
			"table":        o.Table,
			"from":         from,
			"to":           to,
		})
		if err != nil {
			return
		}

		event := ws.Event{Type: eventType, Payload: payload}
		hub.BroadcastToChannel("kitchen", event)
		hub.BroadcastToChannel("floor", event)
		hub.BroadcastToChannel("tables/"+o.Table, event)
	})
}

// seedStaff registers the default terminal accounts.
func seedStaff(registry *staff.Registry) {
	accounts := []struct {
		username, fullName, role, password string
	}{
		{"manager", "Sala Manager", enum.StaffRoleManager, "manager123"},
		{"waiter", "Mesa Waiter", enum.StaffRoleWaiter, "waiter123"},
		{"kitchen", "Cocina Kitchen", enum.StaffRoleKitchen, "kitchen123"},
	}
	for _, a := range accounts {
		if _, err := registry.Register(a.username, a.fullName, a.role, a.password); err != nil {
			log.Fatalf("seed staff %s: %v", a.username, err)
		}
	}
	log.Println("WARNING: Using default staff passwords. Change immediately in production!")
}
