package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/api/metrics"
)

// RequireSelf enforces the self-only rule: the authenticated identity must
// match the :username path parameter. Used by profile and per-user message
// history routes. Must run after Auth.
func RequireSelf() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if identity == "" || identity != c.Param("username") {
				metrics.AuthDeniedTotal.WithLabelValues("self").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}
