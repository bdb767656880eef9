package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

// RequireRole rejects callers below min with 403 Admin Required. It must run
// after Authenticate; a request without an identity gets 401.
func RequireRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if err := domain.Require(id, min); err != nil {
				metrics.AdminRequiredTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Admin Required")
			}
			return next(c)
		}
	}
}
