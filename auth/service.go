package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andrebq/bookshelf/shelf"
)

type (
	UserStore interface {
		CreateUser(ctx context.Context, u shelf.User) (shelf.User, error)
		FindUser(ctx context.Context, name string) (shelf.User, error)
	}

	Service struct {
		users  UserStore
		tokens *Tokens
		rand   io.Reader
	}
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrMissingCredentials = errors.New("auth: username and password are required")
)

// NewService returns a service that keeps users in users and signs
// tokens with tokens. tokens might be nil when the service is only
// used to register users.
func NewService(users UserStore, tokens *Tokens) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		rand:   rand.Reader,
	}
}

// NormalizeUserName returns the form used to store and lookup name
func NormalizeUserName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register stores a new user, shelf.UserExists is returned if the
// normalized name is already taken.
func (s *Service) Register(ctx context.Context, username, password string) (shelf.User, error) {
	username = NormalizeUserName(username)
	if username == "" || password == "" {
		return shelf.User{}, ErrMissingCredentials
	}
	hash, salt, err := HashPassword(s.rand, password)
	if err != nil {
		return shelf.User{}, err
	}
	return s.users.CreateUser(ctx, shelf.User{
		UserName:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
}

// Authenticate checks the given credentials and returns the matching user
func (s *Service) Authenticate(ctx context.Context, username, password string) (shelf.User, error) {
	username = NormalizeUserName(username)
	if username == "" || password == "" {
		return shelf.User{}, ErrMissingCredentials
	}
	u, err := s.users.FindUser(ctx, username)
	if errors.As(err, &shelf.NotFound{}) {
		return shelf.User{}, ErrInvalidCredentials
	} else if err != nil {
		return shelf.User{}, err
	}
	if !VerifyPassword(password, u.PasswordHash, u.PasswordSalt) {
		return shelf.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates the user and returns a new token for it
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if s.tokens == nil {
		return "", errors.New("auth: service cannot issue tokens")
	}
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", fmt.Errorf("unable to login %v, cause %w", u.UserName, err)
	}
	return token, nil
}
