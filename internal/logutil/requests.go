package logutil

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader = "X-Request-Id"
)

type (
	statusRecorder struct {
		http.ResponseWriter
		status int
	}
)

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Requests binds a logger tagged with a request id to every request
// before calling next, and logs the outcome once next returns.
//
// Clients may send their own id in the X-Request-Id header.
func Requests(base zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		log := base.With().
			Str("req.id", id).
			Str("req.method", r.Method).
			Str("req.path", r.URL.Path).
			Logger()
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(WithLogger(r.Context(), log)))
		var evt *zerolog.Event
		if rec.status >= http.StatusInternalServerError {
			evt = log.Warn()
		} else {
			evt = log.Debug()
		}
		evt.Int("res.status", rec.status).Dur("elapsed", time.Since(start)).Msg("Request completed")
	})
}
