package shelf

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type (
	Quote struct {
		ID   int64
		Text string
		// Author is nil when the quote has no known author
		Author  *string
		OwnerID int64
	}
)

func (s *Shelf) ListQuotes(ctx context.Context, owner int64) ([]Quote, error) {
	rows, err := s.db.QueryContext(ctx, `select quote_id, text, author, owner_id
	from quotes
	where owner_id = ?
	order by quote_id asc`, owner)
	if err != nil {
		return nil, fmt.Errorf("unable to list quotes of %v, cause %w", owner, err)
	}
	defer rows.Close()
	out := []Quote{}
	for rows.Next() {
		var q Quote
		var author sql.NullString
		err = rows.Scan(&q.ID, &q.Text, &author, &q.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("unable to scan quote, cause %w", err)
		}
		if author.Valid {
			q.Author = &author.String
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Shelf) InsertQuote(ctx context.Context, q Quote) (Quote, error) {
	err := s.db.QueryRowContext(ctx, `insert into quotes(text, author, owner_id) values (?, ?, ?) returning quote_id`,
		q.Text, nullable(q.Author), q.OwnerID).Scan(&q.ID)
	if constraintViolation(err, sqlite3.ErrConstraintForeignKey) {
		return Quote{}, UnknownOwner{OwnerID: q.OwnerID}
	} else if err != nil {
		return Quote{}, fmt.Errorf("unable to store quote, cause %w", err)
	}
	return q, nil
}

func (s *Shelf) UpdateQuote(ctx context.Context, q Quote) error {
	res, err := s.db.ExecContext(ctx, `update quotes set text = ?, author = ?
	where quote_id = ? and owner_id = ?`,
		q.Text, nullable(q.Author), q.ID, q.OwnerID)
	if err != nil {
		return fmt.Errorf("unable to update quote %v, cause %w", q.ID, err)
	}
	return expectOne(res, "quote", q.ID)
}

func (s *Shelf) DeleteQuote(ctx context.Context, owner, id int64) error {
	res, err := s.db.ExecContext(ctx, `delete from quotes where quote_id = ? and owner_id = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("unable to delete quote %v, cause %w", id, err)
	}
	return expectOne(res, "quote", id)
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
