package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/core/domain"
)

// ctxIdentity extracts the username injected by the Auth middleware and
// fast-fails before any service call when it is absent (presence proves the
// middleware ran).
func ctxIdentity(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}

// domainStatus maps tagged domain errors to their HTTP status. Unknown errors
// map to 500; callers must not leak their text to the client.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyBody), errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// jsonError renders the canonical error envelope for a domain error.
func jsonError(c echo.Context, err error) error {
	status := domainStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(status, errorResponse{Error: msg})
}
