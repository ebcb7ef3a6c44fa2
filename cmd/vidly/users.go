package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/vidly/rental-api/internal/core/service"
	"github.com/vidly/rental-api/internal/infrastructure/config"
	mongodb "github.com/vidly/rental-api/internal/infrastructure/db/mongo"
	"github.com/vidly/rental-api/pkg/logger"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:   "promote",
				Usage:  "Grant administrator rights",
				Flags:  []cli.Flag{emailFlag()},
				Action: setAdmin(true),
			},
			{
				Name:   "demote",
				Usage:  "Revoke administrator rights",
				Flags:  []cli.Flag{emailFlag()},
				Action: setAdmin(false),
			},
		},
	}
}

func emailFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "email",
		Usage:    "email of the registered user",
		Required: true,
	}
}

func setAdmin(isAdmin bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "vidly"})

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "vidly-cli",
		})
		if err != nil {
			return err
		}
		defer func() { _ = mongodb.Disconnect(client) }()

		auth := service.NewAuthService(service.AuthDependencies{
			Users:  mongodb.NewUserRepository(db),
			Logger: log,
		})
		user, err := auth.SetAdmin(ctx, cmd.String("email"), isAdmin)
		if err != nil {
			return fmt.Errorf("set admin for %s: %w", cmd.String("email"), err)
		}

		fmt.Fprintf(cmd.Root().Writer, "%s (%s) isAdmin=%t\n", user.Email, user.ID.Hex(), user.IsAdmin)
		return nil
	}
}
