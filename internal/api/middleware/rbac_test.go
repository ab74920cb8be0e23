package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

func TestRequireAdmin_Allows(t *testing.T) {
	e := echo.New()
	directory := newStubDirectory(activeProfile("u1", domain.RoleUser, domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", domain.Principal{UserID: "u1", IsAdmin: true})

	called := false
	handler := RequireAdmin(directory)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_Forbids(t *testing.T) {
	e := echo.New()
	directory := newStubDirectory(activeProfile("u1", domain.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", domain.Principal{UserID: "u1"})

	handler := RequireAdmin(directory)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderCacheControl); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}

	var body forbiddenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "forbidden" {
		t.Fatalf("unexpected error field %q", body.Error)
	}
	if len(body.Details.RequiredRoles) != 1 || body.Details.RequiredRoles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected required roles %v", body.Details.RequiredRoles)
	}
}

func TestRequireAnyRole_NoPrincipal(t *testing.T) {
	e := echo.New()
	directory := newStubDirectory()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAnyRole(directory, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// Role changes take effect on the next request because the gate re-queries
// the directory instead of trusting the principal snapshot.
func TestRequireAdmin_SeesFreshGrant(t *testing.T) {
	e := echo.New()
	profile := activeProfile("u1", domain.RoleUser)
	directory := newStubDirectory(profile)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// Principal issued before the grant: no admin flag.
	c.Set("principal", domain.Principal{UserID: "u1", Roles: []string{domain.RoleUser}})

	profile.Roles = append(profile.Roles, domain.RoleAdmin)

	called := false
	handler := RequireAdmin(directory)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("expected fresh grant to be honored")
	}
}
