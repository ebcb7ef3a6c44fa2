package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// HeaderAuthToken carries the identity token on requests and on the
// registration response.
const HeaderAuthToken = "x-auth-token"

const principalKey = "principal"

// Authenticate verifies the x-auth-token header and stores the decoded
// principal on the context. A missing header is domain.ErrUnauthenticated; a
// header that fails verification is domain.ErrInvalidToken.
func Authenticate(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderAuthToken)
			if raw == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
