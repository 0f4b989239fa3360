package etl

import (
	"context"

	"github.com/BartekS5/portalsync/pkg/database"
)

// ClearTable deletes every row of table and returns how many were removed.
// An already empty table is not an error.
func ClearTable(ctx context.Context, db *database.DB, table string) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table)
	if err != nil {
		return 0, &DestinationWriteError{Table: table, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		// The count is informational only.
		return 0, nil
	}
	return n, nil
}
