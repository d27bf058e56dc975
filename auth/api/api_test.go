package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := testutil.AcquireShelf(ctx, t)
	defer cleanup()
	tokens := testTokens(t)
	handler := AsHandler(auth.NewService(s, tokens))

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"userName": "NewUser", "password": "password"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	u, err := s.FindUser(ctx, "newuser")
	require.NoError(t, err)

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"userName": "newuser", "password": "other"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(testutil.BodyContains("Username is taken")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/register").
		JSON(`{"userName": "", "password": "other"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"userName": "NEWUSER", "password": "password"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body loginResponse
			if err := decodeBody(res, &body); err != nil {
				return err
			}
			id, _, err := tokens.Verify(body.Token)
			if err != nil {
				return err
			}
			require.Equal(t, u.ID, id)
			return nil
		}).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"userName": "newuser", "password": "wrong"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(testutil.BodyContains("Invalid username or password")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		JSON(`{"userName": "nobody", "password": "password"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(testutil.BodyContains("Invalid username or password")).
		End()

	apitest.New().
		Handler(handler).
		Post("/api/auth/login").
		Body(`{not json`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func decodeBody(res *http.Response, out interface{}) error {
	return json.NewDecoder(res.Body).Decode(out)
}
