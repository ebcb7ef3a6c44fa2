package middleware

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// ValidObjectID rejects requests whose path parameter is not a 24-char hex
// ObjectID with domain.ErrInvalidID, before any store access.
func ValidObjectID(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !primitive.IsValidObjectID(c.Param(param)) {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_id").Inc()
				return domain.ErrInvalidID
			}
			return next(c)
		}
	}
}
