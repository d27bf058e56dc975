package api

import (
	"context"
	"net/http"

	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/julienschmidt/httprouter"
)

type (
	QuoteStore interface {
		ListQuotes(ctx context.Context, owner int64) ([]shelf.Quote, error)
		InsertQuote(ctx context.Context, q shelf.Quote) (shelf.Quote, error)
		UpdateQuote(ctx context.Context, q shelf.Quote) error
		DeleteQuote(ctx context.Context, owner, id int64) error
	}
)

func mountQuotes(router *httprouter.Router, s QuoteStore, protect Guard) {
	router.Handler(http.MethodGet, "/api/quotes", protect(listQuotes(s)))
	router.Handler(http.MethodPost, "/api/quotes", protect(createQuote(s)))
	router.Handler(http.MethodPut, "/api/quotes/:id", protect(updateQuote(s)))
	router.Handler(http.MethodDelete, "/api/quotes/:id", protect(deleteQuote(s)))
}

func listQuotes(s QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		quotes, err := s.ListQuotes(r.Context(), caller)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]QuoteDto, 0, len(quotes))
		for _, q := range quotes {
			out = append(out, toQuoteDto(q))
		}
		writeList(w, r, out)
	}
}

func readQuote(w http.ResponseWriter, r *http.Request) (QuoteDto, bool) {
	var dto QuoteDto
	if err := httpserver.ReadJSON(w, r, &dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return dto, false
	}
	if err := dto.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return dto, false
	}
	return dto, true
}

func createQuote(s QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		dto, ok := readQuote(w, r)
		if !ok {
			return
		}
		q, err := s.InsertQuote(r.Context(), dto.toQuote(caller))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeCreated(w, r, "quotes", q.ID, toQuoteDto(q))
	}
}

func updateQuote(s QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		dto, ok := readQuote(w, r)
		if !ok {
			return
		}
		q := dto.toQuote(caller)
		q.ID = id
		if err := s.UpdateQuote(r.Context(), q); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteQuote(s QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.DeleteQuote(r.Context(), caller, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
