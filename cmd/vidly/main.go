// Command vidly runs the video rental API and its operator tasks.
//
//	@title						Vidly Rental API
//	@version					1.0
//	@description				Genres, movies, customers and rentals for a video rental store.
//	@BasePath					/api
//	@securityDefinitions.apikey	AuthToken
//	@in							header
//	@name						x-auth-token
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:           "vidly",
		Usage:          "Video rental API: genres, movies, customers, rentals and users",
		Version:        "1.0.0",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			usersCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vidly: %v\n", err)
		os.Exit(1)
	}
}
