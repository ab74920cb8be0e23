package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brightcart/storefront-api/internal/api/metrics"
	"github.com/brightcart/storefront-api/internal/core/ports"
)

// principalKey is the echo context key the authenticated principal is stored
// under. Handlers read it back via their context helper.
const principalKey = "principal"

// Auth is the authentication gate: it extracts a token from the request,
// validates it, resolves the subject through the directory, and attaches the
// resulting Principal to the request context.
//
// Absent, invalid, and unresolvable tokens all answer 401; the distinction
// (and the token validation reason) goes to logs and metrics only, never to
// the caller.
func Auth(tokens ports.TokenService, directory ports.Directory, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Credential-bearing responses must never be stored by
			// intermediate caches, success or failure.
			c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

			raw, ok := tokens.ExtractFromRequest(c.Request().Header)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			result := tokens.Validate(raw)
			if !result.Valid {
				metrics.AuthFailuresTotal.WithLabelValues(result.Reason).Inc()
				log.Debug().
					Str("reason", result.Reason).
					Str("path", c.Path()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			profile, err := directory.FindByID(c.Request().Context(), result.Subject)
			if err != nil {
				return err
			}
			principal, err := directory.Validate(profile)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("subject_rejected").Inc()
				log.Debug().
					Err(err).
					Str("subject", result.Subject).
					Msg("token subject rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}
