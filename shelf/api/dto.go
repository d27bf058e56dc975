package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andrebq/bookshelf/shelf"
)

type (
	// Date is a calendar date as exchanged with the frontend, it is
	// rendered without a zone and accepts plain dates as input.
	Date time.Time

	BookDto struct {
		ID              *int64 `json:"id"`
		Title           string `json:"title"`
		Author          string `json:"author"`
		PublicationDate Date   `json:"publicationDate"`
	}

	QuoteDto struct {
		ID     *int64  `json:"id"`
		Text   string  `json:"text"`
		Author *string `json:"author"`
	}
)

const (
	dateLayout = "2006-01-02T15:04:05"
)

var (
	inputLayouts = []string{dateLayout, "2006-01-02", time.RFC3339Nano}
)

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(dateLayout))
}

func (d *Date) UnmarshalJSON(buf []byte) error {
	var str string
	if err := json.Unmarshal(buf, &str); err != nil {
		return fmt.Errorf("date must be a string, cause %w", err)
	}
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			*d = Date(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid date", str)
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func toBookDto(b shelf.Book) BookDto {
	id := b.ID
	return BookDto{
		ID:              &id,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: Date(b.PublicationDate),
	}
}

func (b BookDto) validate() error {
	var missing []string
	if strings.TrimSpace(b.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		missing = append(missing, "author")
	}
	if b.PublicationDate.IsZero() {
		missing = append(missing, "publicationDate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %v", strings.Join(missing, ", "))
	}
	return nil
}

func (b BookDto) toBook(owner int64) shelf.Book {
	return shelf.Book{
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: time.Time(b.PublicationDate),
		OwnerID:         owner,
	}
}

func toQuoteDto(q shelf.Quote) QuoteDto {
	id := q.ID
	return QuoteDto{
		ID:     &id,
		Text:   q.Text,
		Author: q.Author,
	}
}

func (q QuoteDto) validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("missing required fields: text")
	}
	return nil
}

func (q QuoteDto) toQuote(owner int64) shelf.Quote {
	return shelf.Quote{
		Text:    q.Text,
		Author:  q.Author,
		OwnerID: owner,
	}
}
