package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrebq/bookshelf/shelf"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// SigningKey is a key long enough to be accepted by auth.NewTokens,
// never use it outside tests.
const SigningKey = "super_secret_key_for_testing_purposes"

// AcquireShelf opens a new shelf in a temporary directory, the returned
// function closes it and removes the directory.
func AcquireShelf(ctx context.Context, t TestLog) (*shelf.Shelf, func()) {
	dir, err := os.MkdirTemp("", "bookshelf-tests")
	if err != nil {
		t.Fatal(err)
	}
	s, err := shelf.Open(ctx, filepath.Join(dir, "shelf.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return s, func() {
		err := s.Close()
		if err != nil {
			t.Log("unable to close shelf", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// AcquireUser stores a user whose credentials are not meant to be used
func AcquireUser(ctx context.Context, t TestLog, s *shelf.Shelf, name string) shelf.User {
	u, err := s.CreateUser(ctx, shelf.User{UserName: name, PasswordHash: []byte{1}, PasswordSalt: []byte{2}})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

// BodyContains checks if the response body contains the given text,
// it can be used with apitest Assert.
func BodyContains(text string) func(*http.Response, *http.Request) error {
	return func(res *http.Response, _ *http.Request) error {
		buf, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		if !strings.Contains(string(buf), text) {
			return fmt.Errorf("body should contain %q got %q", text, string(buf))
		}
		return nil
	}
}
