package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/api/metrics"
)

// identityKey is the context key the authenticated username is stored under.
const identityKey = "username"

// TokenResolver verifies a session token and returns the identity it was
// issued for (internal/auth.TokenIssuer).
type TokenResolver interface {
	Resolve(token string) (string, error)
}

// Auth validates the bearer token and injects the caller's identity into the
// request context. Identity is resolved fresh from the token on every request.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDeniedTotal.WithLabelValues("token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDeniedTotal.WithLabelValues("token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			username, err := resolver.Resolve(parts[1])
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, username)
			return next(c)
		}
	}
}

// Identity returns the authenticated username injected by Auth, or "" when
// the middleware did not run.
func Identity(c echo.Context) string {
	username, _ := c.Get(identityKey).(string)
	return username
}
