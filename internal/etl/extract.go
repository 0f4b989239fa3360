package etl

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/BartekS5/portalsync/pkg/database"
)

// Row is one extracted source row keyed by column name.
type Row map[string]interface{}

// Extract is a forward-only cursor over a source query. It cannot be rewound;
// rows are read from the server one at a time as Next is called.
type Extract struct {
	table string
	rows  *sql.Rows
	cols  []string
	row   Row
	err   error
}

// OpenExtract runs query against the source and returns a cursor over its rows.
func OpenExtract(ctx context.Context, db *database.DB, table, query string) (*Extract, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &SourceQueryError{Table: table, Err: err}
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, &SourceQueryError{Table: table, Err: err}
	}
	return &Extract{table: table, rows: rows, cols: cols}, nil
}

// Next advances to the next row. It returns false when the extract is
// exhausted or failed; Err tells which.
func (e *Extract) Next() bool {
	if e.err != nil || !e.rows.Next() {
		return false
	}

	values := make([]interface{}, len(e.cols))
	pointers := make([]interface{}, len(e.cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := e.rows.Scan(pointers...); err != nil {
		e.err = &SourceQueryError{Table: e.table, Err: errors.Wrap(err, "scan")}
		return false
	}

	row := make(Row, len(e.cols))
	for i, col := range e.cols {
		row[col] = values[i]
	}
	e.row = row
	return true
}

// Row returns the current row.
func (e *Extract) Row() Row { return e.row }

func (e *Extract) Err() error {
	if e.err != nil {
		return e.err
	}
	if err := e.rows.Err(); err != nil {
		return &SourceQueryError{Table: e.table, Err: err}
	}
	return nil
}

func (e *Extract) Close() error {
	return e.rows.Close()
}
