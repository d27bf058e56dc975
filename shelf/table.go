package shelf

import (
	"context"
	"database/sql"
	"fmt"
)

type (
	TableDef struct {
		Name       string
		Columns    []ColumnDef
		PrimaryKey []string
		Unique     []UniqueDef
	}

	UniqueDef struct {
		Name    string
		Columns []string
	}

	ColumnDef struct {
		Name     string
		Datatype string
		NotNull  bool
	}
)

// Tables lists the name of every table in the shelf, including the
// ones used to track migrations.
func (s *Shelf) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `select name from sqlite_master where type = 'table' order by name`)
	if err != nil {
		return nil, fmt.Errorf("unable to list tables, cause %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return nil, fmt.Errorf("unable to scan table name, cause %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// DescribeTable reads the definition of the given table, columns are
// sorted by name. sql.ErrNoRows is returned when the table does not exist.
func (s *Shelf) DescribeTable(ctx context.Context, name string) (*TableDef, error) {
	td := TableDef{
		Name: name,
	}

	rows, err := s.db.QueryContext(ctx, `select name, type, [notnull], pk from pragma_table_info(?) order by name`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var col ColumnDef
		var pk int
		err = rows.Scan(&col.Name, &col.Datatype, &col.NotNull, &pk)
		if err != nil {
			return nil, err
		}
		td.Columns = append(td.Columns, col)
		if pk > 0 {
			td.PrimaryKey = append(td.PrimaryKey, col.Name)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(td.Columns) == 0 {
		return nil, sql.ErrNoRows
	}
	td.Unique, err = s.uniqueIndexes(ctx, name)
	if err != nil {
		return nil, err
	}
	return &td, nil
}

// uniqueIndexes returns the unique indexes of table, columns keep the
// order they have in the index.
func (s *Shelf) uniqueIndexes(ctx context.Context, table string) ([]UniqueDef, error) {
	rows, err := s.db.QueryContext(ctx, `select idx.name, col.name
	from pragma_index_list(?) idx
	join pragma_index_info(idx.name) col
	where idx.[unique] = 1
	order by idx.name, col.seqno`, table)
	if err != nil {
		return nil, fmt.Errorf("unable to list unique indexes of %v, cause %w", table, err)
	}
	defer rows.Close()
	var out []UniqueDef
	for rows.Next() {
		var idx, col string
		if err := rows.Scan(&idx, &col); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Name != idx {
			out = append(out, UniqueDef{Name: idx})
		}
		last := &out[len(out)-1]
		last.Columns = append(last.Columns, col)
	}
	return out, rows.Err()
}
