package api

import (
	"errors"
	"net/http"

	"github.com/andrebq/bookshelf/auth"
	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/internal/logutil"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/julienschmidt/httprouter"
)

type (
	credentials struct {
		UserName string `json:"userName"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Token string `json:"token"`
	}
)

const (
	msgUsernameTaken      = "Username is taken"
	msgInvalidCredentials = "Invalid username or password"
	msgMissingCredentials = "Username and password are required"
)

// AsHandler exposes the register and login endpoints of svc
func AsHandler(svc *auth.Service) http.Handler {
	router := httprouter.New()
	Mount(router, svc)
	return router
}

// Mount adds the register and login endpoints to router
func Mount(router *httprouter.Router, svc *auth.Service) {
	router.HandlerFunc(http.MethodPost, "/api/auth/register", register(svc))
	router.HandlerFunc(http.MethodPost, "/api/auth/login", login(svc))
}

func register(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		if err := httpserver.ReadJSON(w, r, &c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, err := svc.Register(r.Context(), c.UserName, c.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func login(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		if err := httpserver.ReadJSON(w, r, &c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		token, err := svc.Login(r.Context(), c.UserName, c.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.As(err, &shelf.UserExists{}):
		http.Error(w, msgUsernameTaken, http.StatusBadRequest)
	case errors.Is(err, auth.ErrMissingCredentials):
		http.Error(w, msgMissingCredentials, http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials):
		http.Error(w, msgInvalidCredentials, http.StatusUnauthorized)
	default:
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("Unable to process auth request")
		http.Error(w, "Unable to process request, check logs for more information", http.StatusInternalServerError)
	}
}
