package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/andrebq/bookshelf/internal/testutil"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, cleanup := testutil.AcquireShelf(ctx, t)
	defer cleanup()
	svc := NewService(s, nil)

	u, err := svc.Register(ctx, "NewUser", "password")
	require.NoError(t, err)
	require.Equal(t, "newuser", u.UserName)

	stored, err := s.FindUser(ctx, "newuser")
	require.NoError(t, err)
	require.Equal(t, u.ID, stored.ID)
	require.True(t, VerifyPassword("password", stored.PasswordHash, stored.PasswordSalt))

	_, err = svc.Register(ctx, "NEWUSER", "other")
	var exists shelf.UserExists
	require.True(t, errors.As(err, &exists), "duplicated user should be rejected, got %v", err)

	_, err = svc.Register(ctx, "  ", "password")
	require.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Register(ctx, "someone", "")
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := testutil.AcquireShelf(ctx, t)
	defer cleanup()
	tokens := testTokens(t)
	svc := NewService(s, tokens)

	u, err := svc.Register(ctx, "loginuser", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "LoginUser", "secret")
	require.NoError(t, err)
	id, _, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, id)

	_, err = svc.Login(ctx, "loginuser", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithoutTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := testutil.AcquireShelf(ctx, t)
	defer cleanup()
	svc := NewService(s, nil)
	_, err := svc.Login(ctx, "bob", "secret")
	require.Error(t, err)
}
