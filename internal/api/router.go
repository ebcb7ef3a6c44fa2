package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vidly/rental-api/docs"
	"github.com/vidly/rental-api/internal/api/handler"
	"github.com/vidly/rental-api/internal/api/middleware"
	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
)

// Dependencies is everything the HTTP surface needs. Services are taken as
// ports so tests can assemble the router over in-memory stores.
type Dependencies struct {
	Logger    zerolog.Logger
	Tokens    ports.TokenVerifier
	Auth      ports.AuthService
	Genres    ports.ResourceService[ports.GenreInput, domain.Genre]
	Movies    ports.ResourceService[ports.MovieInput, domain.Movie]
	Customers ports.ResourceService[ports.CustomerInput, domain.Customer]
	Rentals   ports.ResourceService[ports.RentalInput, domain.Rental]
	Checks    map[string]handler.Check

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Recover(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "vidly",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Interceptors ---
	authn := middleware.Authenticate(deps.Tokens)
	admin := middleware.RequireAdmin()
	validID := middleware.ValidObjectID("id")

	catalog := handler.RoutePolicy{
		List:    middleware.Use(),
		Get:     middleware.Use(validID),
		Create:  middleware.Use(authn),
		Replace: middleware.Use(authn, validID),
		Delete:  middleware.Use(validID, authn, admin),
	}
	records := catalog
	records.Delete = middleware.Use(validID, authn)

	root := e.Group("/api")
	handler.NewGenreHandler(deps.Genres).Register(root.Group("/genres"), catalog)
	handler.NewMovieHandler(deps.Movies).Register(root.Group("/movies"), catalog)
	handler.NewCustomerHandler(deps.Customers).Register(root.Group("/customers"), records)
	handler.NewRentalHandler(deps.Rentals).Register(root.Group("/rentals"), records)

	// --- Users and auth ---
	userHandler := handler.NewUserHandler(deps.Auth)
	authHandler := handler.NewAuthHandler(deps.Auth)

	users := root.Group("/users")
	users.POST("", userHandler.Register)
	users.GET("/me", userHandler.Me, authn)
	users.GET("", userHandler.List, authn, admin)
	users.GET("/:id", userHandler.Get, validID, authn, admin)
	users.DELETE("/:id", userHandler.Delete, validID, authn, admin)

	root.POST("/auth", authHandler.Login)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}
