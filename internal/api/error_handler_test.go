package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserInactive, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrNoPaymentIntent, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrReviewExists, http.StatusConflict},
		{domain.ErrLastRole, http.StatusConflict},
		{domain.ErrRoleInUse, http.StatusConflict},
		{domain.ErrDefaultAddress, http.StatusConflict},
		{domain.ErrInvalidRoleName, http.StatusBadRequest},
		{domain.ErrEmptyCart, http.StatusUnprocessableEntity},
		{domain.ErrInsufficientStock, http.StatusUnprocessableEntity},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec, body := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["error"] == "" {
			t.Fatalf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	rec, _ := renderError(t, fmt.Errorf("place order: %w", domain.ErrInsufficientStock))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for wrapped sentinel, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %v", body["error"])
	}
}

func TestErrorHandler_AuthResponsesAreNotCacheable(t *testing.T) {
	for _, err := range []error{domain.ErrInvalidCredentials, domain.ErrForbidden} {
		rec, _ := renderError(t, err)
		if got := rec.Header().Get(echo.HeaderCacheControl); got != "no-store" {
			t.Fatalf("%v: expected no-store, got %q", err, got)
		}
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid payload" {
		t.Fatalf("unexpected message %v", body["error"])
	}
}
