package etl

import (
	"context"

	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/models"
)

// Table describes one ERP extract and the mirror table it refreshes.
type Table interface {
	// Name is the destination table.
	Name() string
	// Query returns the ordered, filtered extract for the source dialect.
	Query(d database.Dialect, windowYears int) string
	// Record builds the destination row from one extracted row.
	Record(r Row) (models.Record, error)
}

// Opener opens a database from a DSN. database.Open is the production opener.
type Opener func(ctx context.Context, dsn string) (*database.DB, error)

// Recorder persists run reports. A nil Recorder disables history.
type Recorder interface {
	Record(ctx context.Context, report *RunReport) error
}
