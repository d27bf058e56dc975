package shelf

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

type (
	// Shelf keeps users and everything they own (books and quotes)
	// in a single SQLite file.
	Shelf struct {
		db *sql.DB
	}
)

const (
	// DefaultFile is used when no database path is configured
	DefaultFile = "bookQuotesApp.db"
)

var (
	//go:embed migrations/*.sql
	migrations embed.FS
)

func connString(file string) string {
	return fmt.Sprintf("file:%v?_foreign_keys=on&_journal=wal&_busy_timeout=5000&mode=rwc", file)
}

// Open loads the shelf stored at file, creating the file and applying
// any pending migration when needed.
func Open(ctx context.Context, file string) (*Shelf, error) {
	if file == "" {
		file = DefaultFile
	}
	if dir := filepath.Dir(file); dir != "." {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("unable to create directory %v to store shelf, cause %w", dir, err)
		}
	}
	conn, err := sql.Open("sqlite3", connString(file))
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping shelf %v, cause %w", file, err)
	}
	s := &Shelf{db: conn}
	_, err = s.migrate(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init shelf %v, cause %w", file, err)
	}
	return s, nil
}

func (s *Shelf) provider() (*goose.Provider, error) {
	dir, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, s.db, dir)
}

func (s *Shelf) migrate(ctx context.Context) ([]*goose.MigrationResult, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	return p.Up(ctx)
}

// SchemaVersion returns the last migration applied to the shelf
func (s *Shelf) SchemaVersion(ctx context.Context) (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

// Ping checks if the underlying database is still reachable
func (s *Shelf) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Shelf) Close() error {
	return s.db.Close()
}

func constraintViolation(err error, code sqlite3.ErrNoExtended) bool {
	var sqlErr sqlite3.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.ExtendedCode == code
}
