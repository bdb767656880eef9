package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/core/ports"
	"github.com/ironguard/inventory-server/internal/infrastructure/token"
	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

// TokenHeader carries the raw session token. No "Bearer" prefix.
const TokenHeader = "token"

// IdentityKey is the echo.Context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Authenticate decodes the session token and stores the caller's identity in
// the context. Every failure is reported as 401 Unauthorized; the precise
// reason only reaches logs and metrics.
func Authenticate(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				reason := token.Reason(err)
				if reason == "" {
					reason = "unknown"
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(IdentityKey, domain.IdentityFromClaims(claims))
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	if !ok || id.Subject == "" {
		return domain.Identity{}, false
	}
	return id, true
}
