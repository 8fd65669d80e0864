package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/api/metrics"
	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// AdminOnly is the authorization gate. It must run after Auth: the verified
// subject is looked up in the identity store and the request proceeds only
// when the account holds the elevated role. An identity with no account is
// an explicit rejection, never a fault.
func AdminOnly(roles ports.RoleChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := c.Get(SubjectKey).(string)
			if subject == "" {
				// Auth did not run; treat as unauthenticated.
				metrics.AuthDenialsTotal.WithLabelValues("missing_credentials").Inc()
				return domain.ErrMissingCredentials
			}

			isAdmin, err := roles.IsAdmin(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownIdentity) {
					metrics.AuthDenialsTotal.WithLabelValues("unknown_identity").Inc()
				}
				return err
			}
			if !isAdmin {
				metrics.AuthDenialsTotal.WithLabelValues("insufficient_role").Inc()
				return domain.ErrInsufficientRole
			}

			return next(c)
		}
	}
}
