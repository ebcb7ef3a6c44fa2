package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// RequireAdmin lets only administrators through. It must run after
// Authenticate; a route wired without it panics on the first request.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				panic("middleware: RequireAdmin used without a preceding Authenticate")
			}
			if !principal.IsAdmin {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
