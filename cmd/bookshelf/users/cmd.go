package users

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/cmdflags"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func Cmd() *cli.Command {
	var s *shelf.Shelf
	var dbFile string
	return &cli.Command{
		Name:  "users",
		Usage: "Manage users of a bookshelf",
		Flags: []cli.Flag{
			cmdflags.Shelf(&dbFile),
		},
		Before: func(ctx *cli.Context) error {
			var err error
			s, err = shelf.Open(ctx.Context, dbFile)
			return err
		},
		After: func(ctx *cli.Context) error {
			if s == nil {
				return nil
			}
			return s.Close()
		},
		Subcommands: []*cli.Command{
			registerCmd(&s),
		},
	}
}

func registerCmd(s **shelf.Shelf) *cli.Command {
	var username string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user (password is read from the terminal, or stdin when piped)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the user to register",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			password, err := readPassword(os.Stdin, ctx.App.ErrWriter)
			if err != nil {
				return err
			}
			u, err := auth.NewService(*s, nil).Register(ctx.Context, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(ctx.App.Writer, "User %v registered with id %v\n", u.UserName, u.ID)
			return nil
		},
	}
}

func readPassword(in *os.File, prompt io.Writer) (string, error) {
	if prompt == nil {
		prompt = os.Stderr
	}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		buf, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}
	password := strings.TrimRight(sc.Text(), "\r\n")
	if len(password) == 0 {
		return "", errors.New("missing password from stdin")
	}
	return password, nil
}
