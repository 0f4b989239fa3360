package etl

import (
	"context"

	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/models"
)

// SyncDateColumn is stamped with the destination server's clock on every insert.
const SyncDateColumn = "sync_date"

// LoadResult is the outcome of loading one record.
type LoadResult struct {
	Key string
	Err *DestinationWriteError
}

func (r LoadResult) OK() bool { return r.Err == nil }

// RowLoader inserts records into one destination table, one statement per
// record with no surrounding transaction.
type RowLoader struct {
	db    *database.DB
	table string
}

func NewRowLoader(db *database.DB, table string) *RowLoader {
	return &RowLoader{db: db, table: table}
}

func (l *RowLoader) Load(ctx context.Context, rec models.Record) LoadResult {
	query, args := l.db.Dialect.Insert(l.table, rec.Bindings(), SyncDateColumn)
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return LoadResult{
			Key: rec.Key(),
			Err: &DestinationWriteError{Table: l.table, Key: rec.Key(), Err: err},
		}
	}
	return LoadResult{Key: rec.Key()}
}
