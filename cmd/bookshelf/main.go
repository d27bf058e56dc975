package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/andrebq/bookshelf/cmd/bookshelf/db"
	"github.com/andrebq/bookshelf/cmd/bookshelf/serve"
	"github.com/andrebq/bookshelf/cmd/bookshelf/users"
	"github.com/andrebq/bookshelf/internal/logutil"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatal().Err(err).Msg("Unable to load .env file")
		}
	}
	os.Exit(run(os.Args))
}

// run executes the command line in args and returns the process exit code
func run(args []string) int {
	var pretty bool
	var level string
	app := &cli.App{
		Name:  "bookshelf",
		Usage: "Keep track of your books and favorite quotes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pretty",
				Usage:       "Human friendly logs instead of JSON lines",
				Destination: &pretty,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Minimum level of log messages",
				Value:       "info",
				EnvVars:     []string{"BOOKSHELF_LOG_LEVEL"},
				Destination: &level,
			},
		},
		Before: func(ctx *cli.Context) error {
			return logutil.Setup(os.Stderr, pretty, level)
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
			db.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
		return 1
	}
	return 0
}
