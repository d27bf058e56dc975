package cmdflags

import (
	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/urfave/cli/v2"
)

func Shelf(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = shelf.DefaultFile
	}
	return &cli.StringFlag{
		Name:        "db",
		Aliases:     []string{"d", "database"},
		Usage:       "Path to the sqlite database holding users, books and quotes",
		EnvVars:     []string{"BOOKSHELF_DB"},
		Destination: out,
		Value:       *out,
	}
}

func SigningKeyEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = auth.SigningKeyEnvVar
	}
	return &cli.StringFlag{
		Name:        "jwt-key-envvar-name",
		Usage:       "Name of the environment variable that holds the token signing key. The key itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}
