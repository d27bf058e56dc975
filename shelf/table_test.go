package shelf

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
)

func TestDescribeTable(t *testing.T) {
	s, cleanup := tempShelf(t)
	defer cleanup()
	ctx := context.Background()

	td, err := s.DescribeTable(ctx, "users")
	if err != nil {
		t.Fatal(err)
	}

	expected := TableDef{
		Name: "users",
		Columns: []ColumnDef{
			{Name: "password_hash", Datatype: "BLOB", NotNull: true},
			{Name: "password_salt", Datatype: "BLOB", NotNull: true},
			{Name: "user_id", Datatype: "INTEGER", NotNull: true},
			{Name: "username", Datatype: "TEXT", NotNull: true},
		},
		PrimaryKey: []string{"user_id"},
		Unique: []UniqueDef{
			{Name: "uidx_users_username", Columns: []string{"username"}},
		},
	}

	if !reflect.DeepEqual(expected, *td) {
		t.Fatalf("Expecting: %v\nGot: %v", expected, *td)
	}

	_, err = s.DescribeTable(ctx, "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("Error should be %v got %v", sql.ErrNoRows, err)
	}
}

func TestTables(t *testing.T) {
	s, cleanup := tempShelf(t)
	defer cleanup()

	tables, err := s.Tables(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"users": false, "books": false, "quotes": false}
	for _, name := range tables {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("table %v should exist, got %v", name, tables)
		}
	}
}

func TestDescribeTableCompositeUnique(t *testing.T) {
	s, cleanup := tempShelf(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `create table editions(edition_id integer primary key, isbn text not null, book_id integer not null, printing integer not null)`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.db.ExecContext(ctx, `create unique index uidx_editions_book_printing on editions(printing, book_id)`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.db.ExecContext(ctx, `create unique index uidx_editions_isbn on editions(isbn)`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.db.ExecContext(ctx, `create index idx_editions_book on editions(book_id)`)
	if err != nil {
		t.Fatal(err)
	}

	td, err := s.DescribeTable(ctx, "editions")
	if err != nil {
		t.Fatal(err)
	}
	expected := []UniqueDef{
		{Name: "uidx_editions_book_printing", Columns: []string{"printing", "book_id"}},
		{Name: "uidx_editions_isbn", Columns: []string{"isbn"}},
	}
	if !reflect.DeepEqual(expected, td.Unique) {
		t.Fatalf("Expecting: %v\nGot: %v", expected, td.Unique)
	}
}
