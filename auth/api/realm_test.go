package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/testutil"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/golang-jwt/jwt/v5"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
)

func testTokens(t *testing.T) *auth.Tokens {
	tokens, err := auth.NewTokens(auth.TokenConfig{
		Key:      []byte(testutil.SigningKey),
		Issuer:   "test-issuer",
		Audience: "test-audience",
		Expires:  30 * time.Minute,
	})
	require.NoError(t, err)
	return tokens
}

func TestProtect(t *testing.T) {
	tokens := testTokens(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache, err := auth.NewTokenCache(ctx, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	for name, realm := range map[string]*Realm{
		"without cache": NewRealm(tokens, nil),
		"with cache":    NewRealm(tokens, cache),
	} {
		t.Run(name, func(t *testing.T) {
			var count uint32
			var seen int64
			protected := realm.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddUint32(&count, 1)
				seen, _ = auth.Caller(r.Context())
				http.Error(w, "OK", http.StatusOK)
			}))

			apitest.Handler(protected).Get("/").Expect(t).Status(http.StatusUnauthorized).End()
			apitest.Handler(protected).Get("/").Header("Authorization", "Bearer abc123").Expect(t).Status(http.StatusUnauthorized).End()
			apitest.Handler(protected).Get("/").Header("Authorization", "Basic Ym9iOnNlY3JldA==").Expect(t).Status(http.StatusUnauthorized).End()

			token, err := tokens.Issue(shelf.User{ID: 42, UserName: "bob"})
			require.NoError(t, err)
			for i := 0; i < 2; i++ {
				apitest.Handler(protected).Get("/").Header("Authorization", fmt.Sprintf("Bearer %v", token)).Expect(t).Status(http.StatusOK).End()
			}
			if count != 2 {
				t.Fatalf("Protected endpoint should have been called twice, got %v", count)
			}
			require.Equal(t, int64(42), seen)
		})
	}
}

func TestProtectRejectsNonNumericSubject(t *testing.T) {
	tokens := testTokens(t)
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		Issuer:    "test-issuer",
		Audience:  jwt.ClaimStrings{"test-audience"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testutil.SigningKey))
	require.NoError(t, err)

	protected := NewRealm(tokens, nil).Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))
	apitest.Handler(protected).Get("/").Header("Authorization", "Bearer "+token).Expect(t).Status(http.StatusUnauthorized).End()
}

func TestProtectRejectsExpiredTokens(t *testing.T) {
	tokens := testTokens(t)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(1),
		Issuer:    "test-issuer",
		Audience:  jwt.ClaimStrings{"test-audience"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testutil.SigningKey))
	require.NoError(t, err)

	protected := NewRealm(tokens, nil).Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))
	apitest.Handler(protected).Get("/").Header("Authorization", "Bearer "+token).Expect(t).Status(http.StatusUnauthorized).End()
}
