package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/api/metrics"
	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// SubjectKey is the context key under which Auth stores the verified
// bearer identity (the subject email).
const SubjectKey = "subject"

// Auth is the authentication gate: it extracts and verifies the bearer
// token and annotates the request with the verified subject. It has no
// other side effects. A missing header rejects with 401; a present but
// unverifiable credential rejects with 403.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDenialsTotal.WithLabelValues("missing_credentials").Inc()
				return domain.ErrMissingCredentials
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDenialsTotal.WithLabelValues("invalid_credentials").Inc()
				return domain.ErrInvalidCredentials
			}

			subject, err := codec.Verify(parts[1])
			if err != nil {
				metrics.AuthDenialsTotal.WithLabelValues("invalid_credentials").Inc()
				return domain.ErrInvalidCredentials
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}
