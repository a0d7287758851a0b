package handler_test

import (
	"net/http"
	"testing"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/google/uuid"
)

type cartBody struct {
	Lines []struct {
		ID        uuid.UUID `json:"id"`
		CatalogID uuid.UUID `json:"catalog_id"`
		Name      string    `json:"name"`
		Quantity  int       `json:"quantity"`
		Note      string    `json:"note"`
	} `json:"lines"`
	Subtotal         string `json:"subtotal"`
	Tax              string `json:"tax"`
	Total            string `json:"total"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

func TestCart_AddAndMerge(t *testing.T) {
	env := newTestEnv(t)
	env.fillCart(t, "table-7") // 1× salmon + 2× lemonade

	var c cartBody
	decode(t, env.do(t, http.MethodGet, "/sessions/table-7/cart", enum.StaffRoleWaiter, nil), &c)

	if len(c.Lines) != 2 {
		t.Fatalf("lines: got %d, want 2 (note-less lemonades merged)", len(c.Lines))
	}
	if c.Lines[1].Quantity != 2 {
		t.Errorf("lemonade quantity: got %d, want 2", c.Lines[1].Quantity)
	}
	if c.Subtotal != "25.99" {
		t.Errorf("subtotal: got %s, want 25.99", c.Subtotal)
	}
	// 25.99 × 1.16
	if c.Total != "30.15" {
		t.Errorf("total: got %s, want 30.15", c.Total)
	}
	if c.EstimatedMinutes != 25 {
		t.Errorf("estimated: got %d, want 25", c.EstimatedMinutes)
	}
}

func TestCart_AddWithNoteStaysSeparate(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/sessions/t/cart/items", enum.StaffRoleWaiter,
		map[string]string{"catalog_id": env.salmon.ID.String()})
	env.do(t, http.MethodPost, "/sessions/t/cart/items", enum.StaffRoleWaiter,
		map[string]string{"catalog_id": env.salmon.ID.String(), "note": "no lemon"})

	var c cartBody
	decode(t, env.do(t, http.MethodGet, "/sessions/t/cart", enum.StaffRoleWaiter, nil), &c)
	if len(c.Lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(c.Lines))
	}
	if c.Lines[1].Note != "no lemon" {
		t.Errorf("note: got %q", c.Lines[1].Note)
	}
}

func TestCart_AddUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/sessions/t/cart/items", enum.StaffRoleWaiter,
		map[string]string{"catalog_id": uuid.New().String()})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
}

func TestCart_AddUnavailableItem(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/sessions/t/cart/items", enum.StaffRoleWaiter,
		map[string]string{"catalog_id": env.flan.ID.String()})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.fillCart(t, "t")

	var c cartBody
	decode(t, env.do(t, http.MethodGet, "/sessions/t/cart", enum.StaffRoleWaiter, nil), &c)
	salmonLine := c.Lines[0].ID

	rr := env.do(t, http.MethodPatch, "/sessions/t/cart/items/"+salmonLine.String(), enum.StaffRoleWaiter,
		map[string]int{"quantity": 3})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rr.Code, rr.Body.String())
	}
	decode(t, rr, &c)
	if c.Lines[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", c.Lines[0].Quantity)
	}

	// Zero removes the line, and it stops counting toward the subtotal.
	rr = env.do(t, http.MethodPatch, "/sessions/t/cart/items/"+salmonLine.String(), enum.StaffRoleWaiter,
		map[string]int{"quantity": 0})
	decode(t, rr, &c)
	if len(c.Lines) != 1 {
		t.Fatalf("lines after zero: got %d, want 1", len(c.Lines))
	}
	if c.Subtotal != "7.00" {
		t.Errorf("subtotal: got %s, want 7.00", c.Subtotal)
	}
}

func TestCart_SetNegativeQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.fillCart(t, "t")

	var c cartBody
	decode(t, env.do(t, http.MethodGet, "/sessions/t/cart", enum.StaffRoleWaiter, nil), &c)

	rr := env.do(t, http.MethodPatch, "/sessions/t/cart/items/"+c.Lines[0].ID.String(), enum.StaffRoleWaiter,
		map[string]int{"quantity": -1})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
}

func TestCart_RemoveItemIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.fillCart(t, "t")

	var c cartBody
	decode(t, env.do(t, http.MethodGet, "/sessions/t/cart", enum.StaffRoleWaiter, nil), &c)
	lineID := c.Lines[0].ID.String()

	for i := 0; i < 2; i++ {
		rr := env.do(t, http.MethodDelete, "/sessions/t/cart/items/"+lineID, enum.StaffRoleWaiter, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("delete %d: status %d", i, rr.Code)
		}
	}

	decode(t, env.do(t, http.MethodGet, "/sessions/t/cart", enum.StaffRoleWaiter, nil), &c)
	if len(c.Lines) != 1 {
		t.Errorf("lines: got %d, want 1", len(c.Lines))
	}
}

func TestCart_Clear(t *testing.T) {
	env := newTestEnv(t)
	env.fillCart(t, "t")

	rr := env.do(t, http.MethodDelete, "/sessions/t/cart", enum.StaffRoleWaiter, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var c cartBody
	decode(t, rr, &c)
	if len(c.Lines) != 0 || c.Subtotal != "0.00" {
		t.Errorf("cart not cleared: %+v", c)
	}
}
