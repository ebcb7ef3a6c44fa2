package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidly/rental-api/internal/core/domain"
)

// MsgInternal is the only message a client sees for an unexpected failure.
const MsgInternal = "Something failed."

// StatusOf maps an error returned by a handler or interceptor to the status
// and message sent to the client. ok is false for errors nothing maps, which
// the caller must treat as a 500.
func StatusOf(err error) (status int, msg string, ok bool) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	var he *echo.HTTPError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message, true
	case errors.As(err, &nf):
		return http.StatusNotFound, fmt.Sprintf("The %s with the given ID was not found.", nf.Resource), true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Access denied. No token provided.", true
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "Invalid token.", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied.", true
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound, "Invalid ID.", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid email or password.", true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts. Try again later.", true
	case errors.As(err, &he):
		if m, isStr := he.Message.(string); isStr {
			return he.Code, m, true
		}
		return he.Code, http.StatusText(he.Code), true
	default:
		return http.StatusInternalServerError, MsgInternal, false
	}
}

// outcome labels err for the resource operation counter.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if status, _, _ := StatusOf(err); status < http.StatusInternalServerError {
		return "rejected"
	}
	return "error"
}
