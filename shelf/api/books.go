package api

import (
	"context"
	"net/http"

	"github.com/andrebq/bookshelf/internal/httpserver"
	"github.com/andrebq/bookshelf/shelf"
	"github.com/julienschmidt/httprouter"
)

type (
	BookStore interface {
		ListBooks(ctx context.Context, owner int64) ([]shelf.Book, error)
		InsertBook(ctx context.Context, b shelf.Book) (shelf.Book, error)
		UpdateBook(ctx context.Context, b shelf.Book) error
		DeleteBook(ctx context.Context, owner, id int64) error
	}
)

func mountBooks(router *httprouter.Router, s BookStore, protect Guard) {
	router.Handler(http.MethodGet, "/api/books", protect(listBooks(s)))
	router.Handler(http.MethodPost, "/api/books", protect(createBook(s)))
	router.Handler(http.MethodPut, "/api/books/:id", protect(updateBook(s)))
	router.Handler(http.MethodDelete, "/api/books/:id", protect(deleteBook(s)))
}

func listBooks(s BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		books, err := s.ListBooks(r.Context(), caller)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]BookDto, 0, len(books))
		for _, b := range books {
			out = append(out, toBookDto(b))
		}
		writeList(w, r, out)
	}
}

func readBook(w http.ResponseWriter, r *http.Request) (BookDto, bool) {
	var dto BookDto
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

func createBook(s BookStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(w, r)
		if !ok {
			return
		}
		dto, ok := readBook(w, r)
		if !ok {
			return
		}
		b, err := s.InsertBook(r.Context(), dto.toBook(caller))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeCreated(w, r, "books", b.ID, toBookDto(b))
	}
}

func updateBook(s BookStore) http.HandlerFunc {
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
		dto, ok := readBook(w, r)
		if !ok {
			return
		}
		b := dto.toBook(caller)
		b.ID = id
		if err := s.UpdateBook(r.Context(), b); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteBook(s BookStore) http.HandlerFunc {
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
		if err := s.DeleteBook(r.Context(), caller, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
