package shelf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type (
	User struct {
		ID           int64
		UserName     string
		PasswordHash []byte
		PasswordSalt []byte
	}
)

// CreateUser stores u and returns it with the generated ID.
//
// Names are compared as given, callers are expected to normalize them
// before reaching this point.
func (s *Shelf) CreateUser(ctx context.Context, u User) (User, error) {
	err := s.db.QueryRowContext(ctx, `insert into users(username, password_hash, password_salt) values (?, ?, ?) returning user_id`,
		u.UserName, u.PasswordHash, u.PasswordSalt).Scan(&u.ID)
	if constraintViolation(err, sqlite3.ErrConstraintUnique) {
		return User{}, UserExists{Name: u.UserName}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to store user %v, cause %w", u.UserName, err)
	}
	return u, nil
}

func (s *Shelf) FindUser(ctx context.Context, name string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select user_id, username, password_hash, password_salt from users where username = ?`, name).
		Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.PasswordSalt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, NotFound{Kind: "user", Key: name}
	} else if err != nil {
		return User{}, fmt.Errorf("unable to load user %v, cause %w", name, err)
	}
	return u, nil
}
