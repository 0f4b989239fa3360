package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/BartekS5/portalsync/pkg/models"
)

// PlaceholderStyle describes how a driver expects bind parameters to be written.
type PlaceholderStyle int

const (
	// Named binds "@column" placeholders with sql.Named args.
	Named PlaceholderStyle = iota
	// Dollar binds "$1..$n" in column order.
	Dollar
	// Question binds "?" in column order.
	Question
)

// Dialect holds the SQL that differs between engines.
type Dialect struct {
	Name        string
	Driver      string
	Placeholder PlaceholderStyle
	// Now is evaluated by the server, so sync timestamps use the database clock.
	Now string
	// cutoff is a format string taking the number of years to subtract from the server date.
	cutoff string
}

var (
	SQLServer = Dialect{
		Name:        "sqlserver",
		Driver:      "sqlserver",
		Placeholder: Named,
		Now:         "SYSDATETIME()",
		cutoff:      "DATEADD(year, -%d, CAST(GETDATE() AS date))",
	}
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		Placeholder: Named,
		Now:         "strftime('%Y-%m-%d %H:%M:%f', 'now')",
		cutoff:      "date('now', '-%d years')",
	}
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "postgres",
		Placeholder: Dollar,
		Now:         "clock_timestamp()",
		cutoff:      "(current_date - interval '%d years')",
	}
	MySQL = Dialect{
		Name:        "mysql",
		Driver:      "mysql",
		Placeholder: Question,
		Now:         "NOW(6)",
		cutoff:      "DATE_SUB(CURDATE(), INTERVAL %d YEAR)",
	}
)

// dialects is keyed by the driver name dburl resolves a DSN scheme to.
var dialects = map[string]Dialect{
	"sqlserver":     SQLServer,
	"mssql":         SQLServer,
	"postgres":      Postgres,
	"mysql":         MySQL,
	"sqlite":        SQLite,
	"sqlite3":       SQLite,
	"moderncsqlite": SQLite,
}

// DialectFor returns the dialect registered for a dburl driver name.
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

// Cutoff renders the first day of the trailing window of the given number of years.
func (d Dialect) Cutoff(years int) string {
	return fmt.Sprintf(d.cutoff, years)
}

// Insert renders a single-row INSERT naming every bound column explicitly,
// followed by stampCol set to the server clock. The args are built from the
// same column/value pairs as the column list.
func (d Dialect) Insert(table string, bindings []models.Binding, stampCol string) (string, []interface{}) {
	cols := make([]string, 0, len(bindings)+1)
	placeholders := make([]string, 0, len(bindings)+1)
	args := make([]interface{}, 0, len(bindings))

	for i, b := range bindings {
		cols = append(cols, b.Column)
		switch d.Placeholder {
		case Named:
			placeholders = append(placeholders, "@"+b.Column)
			args = append(args, sql.Named(b.Column, b.Value))
		case Dollar:
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, b.Value)
		default:
			placeholders = append(placeholders, "?")
			args = append(args, b.Value)
		}
	}
	if stampCol != "" {
		cols = append(cols, stampCol)
		placeholders = append(placeholders, d.Now)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return query, args
}
