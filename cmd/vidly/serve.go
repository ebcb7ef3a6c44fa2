package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidly/rental-api/internal/api"
	"github.com/vidly/rental-api/internal/api/handler"
	"github.com/vidly/rental-api/internal/core/service"
	"github.com/vidly/rental-api/internal/infrastructure/config"
	mongodb "github.com/vidly/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vidly/rental-api/internal/infrastructure/db/redis"
	"github.com/vidly/rental-api/pkg/logger"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API",
		Action: serve,
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "vidly",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "vidly",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	e := api.NewRouter(dependencies(cfg, db, rdb, log))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func dependencies(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) api.Dependencies {
	genres := mongodb.NewGenreRepository(db)
	movies := mongodb.NewMovieRepository(db)
	customers := mongodb.NewCustomerRepository(db)
	rentals := mongodb.NewRentalRepository(db)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := service.NewAuthService(service.AuthDependencies{
		Users:    mongodb.NewUserRepository(db),
		Hasher:   service.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:   tokens,
		Throttle: redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		Logger:   log,
	})

	catalog := logger.Component("catalog")
	return api.Dependencies{
		Logger:    log,
		Tokens:    tokens,
		Auth:      auth,
		Genres:    service.NewGenreService(genres, catalog),
		Movies:    service.NewMovieService(movies, genres, catalog),
		Customers: service.NewCustomerService(customers, catalog),
		Rentals:   service.NewRentalService(rentals, customers, movies, logger.Component("rentals")),
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	}
}
