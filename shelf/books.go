package shelf

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
)

type (
	Book struct {
		ID              int64
		Title           string
		Author          string
		PublicationDate time.Time
		OwnerID         int64
	}
)

const (
	dateLayout = time.RFC3339Nano
)

// ListBooks returns every book owned by owner, ordered by id
func (s *Shelf) ListBooks(ctx context.Context, owner int64) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, `select book_id, title, author, publication_date, owner_id
	from books
	where owner_id = ?
	order by book_id asc`, owner)
	if err != nil {
		return nil, fmt.Errorf("unable to list books of %v, cause %w", owner, err)
	}
	defer rows.Close()
	out := []Book{}
	for rows.Next() {
		var b Book
		var date string
		err = rows.Scan(&b.ID, &b.Title, &b.Author, &date, &b.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("unable to scan book, cause %w", err)
		}
		b.PublicationDate, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("book %v has an invalid publication date %q, cause %w", b.ID, date, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// InsertBook stores b under b.OwnerID and returns it with the generated id.
func (s *Shelf) InsertBook(ctx context.Context, b Book) (Book, error) {
	err := s.db.QueryRowContext(ctx, `insert into books(title, author, publication_date, owner_id) values (?, ?, ?, ?) returning book_id`,
		b.Title, b.Author, b.PublicationDate.UTC().Format(dateLayout), b.OwnerID).Scan(&b.ID)
	if constraintViolation(err, sqlite3.ErrConstraintForeignKey) {
		return Book{}, UnknownOwner{OwnerID: b.OwnerID}
	} else if err != nil {
		return Book{}, fmt.Errorf("unable to store book, cause %w", err)
	}
	return b, nil
}

// UpdateBook overwrites the mutable fields of the book identified by
// b.ID, as long as it belongs to b.OwnerID. Otherwise NotFound is returned
// and nothing changes.
func (s *Shelf) UpdateBook(ctx context.Context, b Book) error {
	res, err := s.db.ExecContext(ctx, `update books set title = ?, author = ?, publication_date = ?
	where book_id = ? and owner_id = ?`,
		b.Title, b.Author, b.PublicationDate.UTC().Format(dateLayout), b.ID, b.OwnerID)
	if err != nil {
		return fmt.Errorf("unable to update book %v, cause %w", b.ID, err)
	}
	return expectOne(res, "book", b.ID)
}

func (s *Shelf) DeleteBook(ctx context.Context, owner, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from books where book_id = ? and owner_id = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("unable to delete book %v, cause %w", id, err)
	}
	return expectOne(res, "book", id)
}

func expectOne(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check changes to %v %v, cause %w", kind, id, err)
	}
	if n == 0 {
		return NotFound{Kind: kind, Key: strconv.FormatInt(id, 10)}
	}
	return nil
}
