package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/api/middleware"
)

// subject extracts the verified bearer identity injected by the Auth
// middleware and fast-fails before any service call: an empty subject means
// the gate never ran, which is a wiring bug, not a client error worth a
// detailed message.
func subject(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.SubjectKey).(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
