package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidly/rental-api/internal/api/middleware"
	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// UserHandler serves registration, the caller's own profile and the
// admin-only user listing.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Register creates a user and answers with its public fields; the token is
// sent in the x-auth-token header.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  userResponse
// @Header       200   {string}  x-auth-token  "identity token"
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.observe("create", domain.NewValidationError("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return h.observe("create", err)
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.toInput())
	if err := h.observe("create", err); err != nil {
		return err
	}

	c.Response().Header().Set(middleware.HeaderAuthToken, token)
	return c.JSON(http.StatusOK, userResponse{ID: user.ID.Hex(), Name: user.Name, Email: user.Email})
}

// Me returns the authenticated caller.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Param        x-auth-token  header  string  true  "Identity token"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}
	user, err := h.authService.Me(c.Request().Context(), principal.SubjectID)
	if err := h.observe("get", err); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns every user. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        x-auth-token  header  string  true  "Identity token"
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err := h.observe("list", err); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user. Admin only.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id            path    string  true  "ObjectID"
// @Param        x-auth-token  header  string  true  "Identity token"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context(), c.Param("id"))
	if err := h.observe("get", err); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user and returns it. Admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id            path    string  true  "ObjectID"
// @Param        x-auth-token  header  string  true  "Identity token"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.authService.DeleteUser(c.Request().Context(), c.Param("id"))
	if err := h.observe("delete", err); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) observe(op string, err error) error {
	metrics.ResourceOperationsTotal.WithLabelValues("user", op, outcome(err)).Inc()
	return err
}
