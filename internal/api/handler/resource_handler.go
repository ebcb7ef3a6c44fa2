package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidly/rental-api/internal/api/middleware"
	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
	"github.com/vidly/rental-api/internal/pkg/metrics"
)

// request is an inbound payload that validates through struct tags and
// converts into the service input.
type request[In any] interface {
	toInput() In
}

// RoutePolicy lists the interceptors guarding each route of a resource, in
// the order they run.
type RoutePolicy struct {
	List    middleware.Chain
	Get     middleware.Chain
	Create  middleware.Chain
	Replace middleware.Chain
	Delete  middleware.Chain
}

// ResourceHandler serves the five CRUD routes of one catalog resource. Req
// is the validated request body, In the service input and T the stored record.
type ResourceHandler[Req request[In], In any, T any] struct {
	name    string
	service ports.ResourceService[In, T]
}

func NewResourceHandler[Req request[In], In any, T any](name string, service ports.ResourceService[In, T]) *ResourceHandler[Req, In, T] {
	return &ResourceHandler[Req, In, T]{name: name, service: service}
}

func NewGenreHandler(service ports.ResourceService[ports.GenreInput, domain.Genre]) *ResourceHandler[genreRequest, ports.GenreInput, domain.Genre] {
	return NewResourceHandler[genreRequest, ports.GenreInput, domain.Genre]("genre", service)
}

func NewMovieHandler(service ports.ResourceService[ports.MovieInput, domain.Movie]) *ResourceHandler[movieRequest, ports.MovieInput, domain.Movie] {
	return NewResourceHandler[movieRequest, ports.MovieInput, domain.Movie]("movie", service)
}

func NewCustomerHandler(service ports.ResourceService[ports.CustomerInput, domain.Customer]) *ResourceHandler[customerRequest, ports.CustomerInput, domain.Customer] {
	return NewResourceHandler[customerRequest, ports.CustomerInput, domain.Customer]("customer", service)
}

func NewRentalHandler(service ports.ResourceService[ports.RentalInput, domain.Rental]) *ResourceHandler[rentalRequest, ports.RentalInput, domain.Rental] {
	return NewResourceHandler[rentalRequest, ports.RentalInput, domain.Rental]("rental", service)
}

// Register mounts the handler on g under the given policy.
func (h *ResourceHandler[Req, In, T]) Register(g *echo.Group, p RoutePolicy) {
	g.GET("", p.List.Then(h.List))
	g.GET("/:id", p.Get.Then(h.Get))
	g.POST("", p.Create.Then(h.Create))
	g.PUT("/:id", p.Replace.Then(h.Replace))
	g.DELETE("/:id", p.Delete.Then(h.Delete))
}

// List returns every record in the resource's sort order.
//
// @Summary      List records
// @Tags         catalog
// @Produce      json
// @Param        resource  path  string  true  "genres, movies, customers or rentals"
// @Success      200  {array}   object
// @Failure      500  {object}  errorResponse
// @Router       /{resource} [get]
func (h *ResourceHandler[Req, In, T]) List(c echo.Context) error {
	docs, err := h.service.List(c.Request().Context())
	return h.respond(c, "list", docs, err)
}

// Get returns one record by id.
//
// @Summary      Get a record
// @Tags         catalog
// @Produce      json
// @Param        resource  path  string  true  "genres, movies, customers or rentals"
// @Param        id        path  string  true  "ObjectID"
// @Success      200  {object}  object
// @Failure      404  {object}  errorResponse
// @Router       /{resource}/{id} [get]
func (h *ResourceHandler[Req, In, T]) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	return h.respond(c, "get", doc, err)
}

// Create validates the body and stores a new record.
//
// @Summary      Create a record
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        resource        path    string  true  "genres, movies, customers or rentals"
// @Param        x-auth-token    header  string  true  "Identity token"
// @Success      200  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /{resource} [post]
func (h *ResourceHandler[Req, In, T]) Create(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return h.respond(c, "create", nil, err)
	}
	doc, err := h.service.Create(c.Request().Context(), in)
	return h.respond(c, "create", doc, err)
}

// Replace validates the body and overwrites the record's fields.
//
// @Summary      Replace a record
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        resource        path    string  true  "genres, movies, customers or rentals"
// @Param        id              path    string  true  "ObjectID"
// @Param        x-auth-token    header  string  true  "Identity token"
// @Success      200  {object}  object
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /{resource}/{id} [put]
func (h *ResourceHandler[Req, In, T]) Replace(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return h.respond(c, "replace", nil, err)
	}
	doc, err := h.service.Replace(c.Request().Context(), c.Param("id"), in)
	return h.respond(c, "replace", doc, err)
}

// Delete removes a record and returns it.
//
// @Summary      Delete a record
// @Tags         catalog
// @Produce      json
// @Param        resource        path    string  true  "genres, movies, customers or rentals"
// @Param        id              path    string  true  "ObjectID"
// @Param        x-auth-token    header  string  true  "Identity token"
// @Success      200  {object}  object
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /{resource}/{id} [delete]
func (h *ResourceHandler[Req, In, T]) Delete(c echo.Context) error {
	doc, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	return h.respond(c, "delete", doc, err)
}

func (h *ResourceHandler[Req, In, T]) bind(c echo.Context) (In, error) {
	var req Req
	var zero In
	if err := c.Bind(&req); err != nil {
		return zero, domain.NewValidationError("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return zero, err
	}
	return req.toInput(), nil
}

func (h *ResourceHandler[Req, In, T]) respond(c echo.Context, op string, body any, err error) error {
	metrics.ResourceOperationsTotal.WithLabelValues(h.name, op, outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}
