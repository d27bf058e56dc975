package db

import (
	"fmt"
	"strings"

	"github.com/andrebq/bookshelf/internal/cmdflags"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var s *shelf.Shelf
	var dbFile string
	return &cli.Command{
		Name:  "db",
		Usage: "Inspect and maintain the bookshelf database",
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
			migrateCmd(&s),
			tablesCmd(&s),
		},
	}
}

func migrateCmd(s **shelf.Shelf) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations and print the schema version",
		Action: func(ctx *cli.Context) error {
			// opening the shelf already applied them
			v, err := (*s).SchemaVersion(ctx.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(ctx.App.Writer, "Schema version: %v\n", v)
			return nil
		},
	}
}

func tablesCmd(s **shelf.Shelf) *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List tables and their columns",
		Action: func(ctx *cli.Context) error {
			tables, err := (*s).Tables(ctx.Context)
			if err != nil {
				return err
			}
			for _, name := range tables {
				def, err := (*s).DescribeTable(ctx.Context, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(ctx.App.Writer, "%v (pk: %v)\n", def.Name, strings.Join(def.PrimaryKey, ", "))
				for _, c := range def.Columns {
					nullity := "null"
					if c.NotNull {
						nullity = "not null"
					}
					fmt.Fprintf(ctx.App.Writer, "\t%v %v %v\n", c.Name, c.Datatype, nullity)
				}
				for _, u := range def.Unique {
					fmt.Fprintf(ctx.App.Writer, "\tunique %v (%v)\n", u.Name, strings.Join(u.Columns, ", "))
				}
			}
			return nil
		},
	}
}
