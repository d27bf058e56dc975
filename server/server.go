package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrebq/bookshelf/auth"
	authapi "github.com/andrebq/bookshelf/auth/api"
	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/internal/logutil"
	"github.com/andrebq/bookshelf/shelf"
	shelfapi "github.com/andrebq/bookshelf/shelf/api"
	"github.com/julienschmidt/httprouter"
)

type (
	Options struct {
		Tokens *auth.Tokens
		// Cache is optional, when present verified tokens are kept
		// in memory until they expire
		Cache *auth.TokenCache
		// AllowedOrigins defaults to httpserver.DefaultOrigins
		AllowedOrigins []string
	}
)

// AsHandler combines the auth, books and quotes endpoints of s into a
// single handler. Every request is logged with the logger from ctx.
func AsHandler(ctx context.Context, s *shelf.Shelf, opts Options) (http.Handler, error) {
	if opts.Tokens == nil {
		return nil, errors.New("server: missing token configuration")
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = httpserver.DefaultOrigins
	}
	realm := authapi.NewRealm(opts.Tokens, opts.Cache)

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/healthz", healthz(s))
	authapi.Mount(router, auth.NewService(s, opts.Tokens))
	shelfapi.Mount(router, s, realm.Protect)

	return logutil.Requests(logutil.GetOrDefault(ctx), httpserver.CORS(origins, router)), nil
}

func healthz(s *shelf.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			log := logutil.GetOrDefault(r.Context())
			log.Error().Err(err).Msg("Database is not reachable")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
