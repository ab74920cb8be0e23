package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/api/metrics"
	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// currentPrincipal extracts the principal injected by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// routing bug surfaced as 401 rather than a panic.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get("principal").(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}

// denied converts an ownership denial into the transport error and marks the
// response non-cacheable. The denial reason maps 1:1 onto a status code; the
// central error handler renders the envelope.
func denied(c echo.Context, resourceType string, res ports.AuthResult) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	switch res.Reason {
	case ports.DenyNotFound:
		return echo.NewHTTPError(http.StatusNotFound, resourceType+" not found")
	case ports.DenyForbidden:
		metrics.AuthzDeniedTotal.WithLabelValues("ownership").Inc()
		return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "missing resource identifier")
	}
}
