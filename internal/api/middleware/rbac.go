package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightcart/storefront-api/internal/api/metrics"
	"github.com/brightcart/storefront-api/internal/core/domain"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

type forbiddenResponse struct {
	Error   string           `json:"error"`
	Details forbiddenDetails `json:"details"`
}

type forbiddenDetails struct {
	RequiredRoles []string `json:"required_roles"`
}

// RequireAdmin allows only users currently holding the admin role.
func RequireAdmin(directory ports.Directory) echo.MiddlewareFunc {
	return RequireAnyRole(directory, domain.RoleAdmin)
}

// RequireModerator allows only users currently holding the moderator role.
func RequireModerator(directory ports.Directory) echo.MiddlewareFunc {
	return RequireAnyRole(directory, domain.RoleModerator)
}

// RequireAnyRole allows users holding at least one of the given roles.
// Roles are re-queried from the directory on every request rather than
// trusted from the principal snapshot, so a grant or revocation takes effect
// on the very next request, not only after re-login.
func RequireAnyRole(directory ports.Directory, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(principalKey).(domain.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			allowed, err := directory.HasAnyRole(c.Request().Context(), principal.UserID, roles...)
			if err != nil {
				return err
			}
			if !allowed {
				metrics.AuthzDeniedTotal.WithLabelValues("role").Inc()
				c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Error:   "forbidden",
					Details: forbiddenDetails{RequiredRoles: roles},
				})
			}
			return next(c)
		}
	}
}
