package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/internal/logutil"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/cespare/xxhash/v2"
	"github.com/julienschmidt/httprouter"
)

type (
	// Store is the subset of shelf.Shelf used by the resource handlers
	Store interface {
		BookStore
		QuoteStore
	}

	// Guard wraps handlers that can only be called by a signed in user,
	// see auth/api.Realm.Protect
	Guard func(http.Handler) http.Handler

	errInvalidID struct{}
)

func (errInvalidID) Error() string { return "invalid id" }

// AsHandler exposes books and quotes of the callers accepted by protect
func AsHandler(s Store, protect Guard) http.Handler {
	router := httprouter.New()
	Mount(router, s, protect)
	return router
}

// Mount adds the books and quotes endpoints to router
func Mount(router *httprouter.Router, s Store, protect Guard) {
	mountBooks(router, s, protect)
	mountQuotes(router, s, protect)
}

func callerOrReject(w http.ResponseWriter, r *http.Request) (int64, bool) {
	caller, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "Invalid or missing token", http.StatusUnauthorized)
	}
	return caller, ok
}

func pathID(r *http.Request) (int64, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errInvalidID{}
	}
	return id, nil
}

// writeList sends items as a JSON array, tagged with an ETag computed
// from the encoded body. Clients that already have it get 304.
func writeList(w http.ResponseWriter, r *http.Request, items interface{}) {
	body, err := httpserver.EncodeJSON(items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	httpserver.WriteBody(w, http.StatusOK, body)
}

func writeCreated(w http.ResponseWriter, r *http.Request, kind string, id int64, item interface{}) {
	w.Header().Set("Location", fmt.Sprintf("/api/%v/%v", kind, id))
	if err := httpserver.WriteJSON(w, http.StatusCreated, item); err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to encode created item")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.As(err, &errInvalidID{}), errors.As(err, &shelf.NotFound{}):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.As(err, &shelf.UnknownOwner{}):
		// the token is valid but its user is gone
		http.Error(w, "Invalid or missing token", http.StatusUnauthorized)
	default:
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to process request")
		http.Error(w, "Unable to process request, check logs for more information", http.StatusInternalServerError)
	}
}
