package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comanda-pos/api/internal/auth"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/handler"
	"github.com/comanda-pos/api/internal/staff"
	"github.com/go-chi/chi/v5"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()
	registry := staff.NewRegistry()
	if _, err := registry.Register("ana", "Ana Morales", enum.StaffRoleWaiter, "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	r := chi.NewRouter()
	handler.NewAuthHandler(registry, testSecret).RegisterRoutes(r)
	return r
}

func postLogin(t *testing.T, r chi.Router, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", &buf)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	r := newAuthRouter(t)

	rr := postLogin(t, r, map[string]string{"username": "ana", "password": "s3cret"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		Staff       struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"staff"`
	}
	decode(t, rr, &resp)
	if resp.Staff.Username != "ana" || resp.Staff.Role != enum.StaffRoleWaiter {
		t.Errorf("staff: %+v", resp.Staff)
	}

	claims, err := auth.ValidateToken(testSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("returned token invalid: %v", err)
	}
	if claims.Role != enum.StaffRoleWaiter {
		t.Errorf("token role: got %s", claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newAuthRouter(t)
	rr := postLogin(t, r, map[string]string{"username": "ana", "password": "nope"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	r := newAuthRouter(t)
	rr := postLogin(t, r, map[string]string{"username": "ana"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
}
