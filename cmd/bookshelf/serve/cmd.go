package serve

import (
	"fmt"
	"os"
	"time"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/cmdflags"
	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/internal/logutil"
	"github.com/andrebq/bookshelf/server"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7008"
	var dbFile string
	var keyEnvVar string
	var issuer, audience string
	expiresMinutes := int(auth.DefaultExpires / time.Minute)
	useCache := true
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the bookshelf API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind the API",
				Value:       bindAddr,
				EnvVars:     []string{"BOOKSHELF_BIND"},
				Destination: &bindAddr,
			},
			cmdflags.Shelf(&dbFile),
			cmdflags.SigningKeyEnvVar(&keyEnvVar),
			&cli.StringFlag{
				Name:        "jwt-issuer",
				Usage:       "Issuer of tokens, when empty tokens are not checked for it",
				EnvVars:     []string{"BOOKSHELF_JWT_ISSUER"},
				Destination: &issuer,
			},
			&cli.StringFlag{
				Name:        "jwt-audience",
				Usage:       "Audience of tokens, when empty tokens are not checked for it",
				EnvVars:     []string{"BOOKSHELF_JWT_AUDIENCE"},
				Destination: &audience,
			},
			&cli.IntFlag{
				Name:        "jwt-expires-minutes",
				Usage:       "How long tokens are valid after login",
				Value:       expiresMinutes,
				EnvVars:     []string{"BOOKSHELF_JWT_EXPIRES_MINUTES"},
				Destination: &expiresMinutes,
			},
			&cli.StringSliceFlag{
				Name:    "cors-origin",
				Usage:   "Origins allowed to call the API from a browser",
				Value:   cli.NewStringSlice(httpserver.DefaultOrigins...),
				EnvVars: []string{"BOOKSHELF_CORS_ORIGINS"},
			},
			&cli.BoolFlag{
				Name:        "token-cache",
				Usage:       "Keep verified tokens in memory until they expire",
				Value:       useCache,
				Destination: &useCache,
			},
		},
		Action: func(ctx *cli.Context) error {
			log := logutil.GetOrDefault(ctx.Context)
			lifetime, err := tokenLifetime(expiresMinutes)
			if err != nil {
				return err
			}
			key, err := auth.SigningKeyFromEnv(keyEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokens(auth.TokenConfig{
				Key:      key,
				Issuer:   issuer,
				Audience: audience,
				Expires:  lifetime,
			})
			if err != nil {
				return err
			}

			s, err := shelf.Open(ctx.Context, dbFile)
			if err != nil {
				return err
			}
			defer s.Close()
			tables, err := s.Tables(ctx.Context)
			if err != nil {
				return err
			}
			log.Info().Str("db", dbFile).Strs("tables", tables).Msg("Shelf loaded")

			opts := server.Options{
				Tokens:         tokens,
				AllowedOrigins: ctx.StringSlice("cors-origin"),
			}
			if useCache {
				opts.Cache, err = auth.NewTokenCache(ctx.Context, lifetime)
				if err != nil {
					return err
				}
				defer opts.Cache.Close()
			}
			handler, err := server.AsHandler(ctx.Context, s, opts)
			if err != nil {
				return err
			}
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}

func tokenLifetime(minutes int) (time.Duration, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("jwt-expires-minutes must be positive, got %v", minutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}
