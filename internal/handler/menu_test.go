package handler_test

import (
	"net/http"
	"testing"

	"github.com/comanda-pos/api/internal/enum"
)

type menuBody struct {
	Items []struct {
		Name      string `json:"name"`
		Category  string `json:"category"`
		UnitPrice string `json:"unit_price"`
		Available bool   `json:"available"`
	} `json:"items"`
}

func TestMenuList(t *testing.T) {
	env := newTestEnv(t)

	var m menuBody
	rr := env.do(t, http.MethodGet, "/menu", enum.StaffRoleWaiter, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	decode(t, rr, &m)
	if len(m.Items) != 3 {
		t.Fatalf("items: got %d, want 3", len(m.Items))
	}
	if m.Items[0].UnitPrice != "18.99" {
		t.Errorf("price formatting: got %s", m.Items[0].UnitPrice)
	}
}

func TestMenuList_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)

	var m menuBody
	decode(t, env.do(t, http.MethodGet, "/menu?category="+enum.CategoryDrinks, enum.StaffRoleWaiter, nil), &m)
	if len(m.Items) != 1 || m.Items[0].Name != "Lemonade" {
		t.Errorf("drinks filter wrong: %+v", m.Items)
	}
}

func TestMenuList_AvailableFilter(t *testing.T) {
	env := newTestEnv(t)

	var m menuBody
	decode(t, env.do(t, http.MethodGet, "/menu?available=true", enum.StaffRoleWaiter, nil), &m)
	if len(m.Items) != 2 {
		t.Fatalf("available filter: got %d, want 2", len(m.Items))
	}
	for _, it := range m.Items {
		if !it.Available {
			t.Errorf("unavailable item leaked: %s", it.Name)
		}
	}
}

func TestMenuList_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/menu", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}
