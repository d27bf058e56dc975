package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/logutil"
)

type (
	// Realm guards handlers that require a signed in user
	Realm struct {
		tokens *auth.Tokens
		cache  *auth.TokenCache
	}
)

var (
	bearerTokenRE = regexp.MustCompile(`^(?i:Bearer) ([^\s]+)$`)

	errMissingToken = errors.New("missing bearer token")
)

// NewRealm returns a realm that accepts tokens verified by tokens,
// cache is optional.
func NewRealm(tokens *auth.Tokens, cache *auth.TokenCache) *Realm {
	return &Realm{
		tokens: tokens,
		cache:  cache,
	}
}

// Protect calls sensitive only for requests with a valid bearer token,
// the id of the user is available through auth.Caller.
func (s *Realm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := s.checkToken(r)
		if err != nil {
			log := logutil.GetOrDefault(r.Context())
			log.Debug().Err(err).Msg("Request rejected")
			http.Error(w, "Invalid or missing token", http.StatusUnauthorized)
			return
		}
		sensitive.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
	})
}

func (s *Realm) checkToken(r *http.Request) (int64, error) {
	log := logutil.GetOrDefault(r.Context())
	groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
	if len(groups) == 0 {
		return 0, errMissingToken
	}
	tk := groups[1]
	if s.cache != nil {
		caller, found, err := s.cache.Lookup(tk, s.tokens.Now())
		if err != nil {
			log.Error().Err(err).Msg("Unexpected error when checking for token in token cache")
		} else if found {
			return caller, nil
		}
	}
	caller, expires, err := s.tokens.Verify(tk)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Save(tk, caller, expires); err != nil {
			log.Warn().Err(err).Msg("Unable to cache verified token")
		}
	}
	return caller, nil
}
