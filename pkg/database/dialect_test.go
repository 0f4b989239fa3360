package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/portalsync/pkg/models"
)

var sample = []models.Binding{
	{Column: "cust_no", Value: "C100"},
	{Column: "phone", Value: sql.NullString{}},
}

func TestInsertNamed(t *testing.T) {
	query, args := SQLServer.Insert("customer", sample, "sync_date")

	assert.Equal(t, "INSERT INTO customer (cust_no, phone, sync_date) VALUES (@cust_no, @phone, SYSDATETIME())", query)
	require.Len(t, args, 2)
	assert.Equal(t, sql.Named("cust_no", "C100"), args[0])
	assert.Equal(t, sql.Named("phone", sql.NullString{}), args[1])
}

func TestInsertPositional(t *testing.T) {
	query, args := Postgres.Insert("customer", sample, "sync_date")
	assert.Equal(t, "INSERT INTO customer (cust_no, phone, sync_date) VALUES ($1, $2, clock_timestamp())", query)
	assert.Equal(t, []interface{}{"C100", sql.NullString{}}, args)

	query, _ = MySQL.Insert("customer", sample, "")
	assert.Equal(t, "INSERT INTO customer (cust_no, phone) VALUES (?, ?)", query)
}

func TestCutoff(t *testing.T) {
	assert.Equal(t, "DATEADD(year, -2, CAST(GETDATE() AS date))", SQLServer.Cutoff(2))
	assert.Equal(t, "date('now', '-3 years')", SQLite.Cutoff(3))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Driver)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")

	db, err := Open(context.Background(), "sqlite:"+path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", db.Dialect.Name)
	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "nosuchscheme://host/db")
	assert.Error(t, err)
}
