package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/xo/dburl"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB is an open single-connection pool plus the dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
	// Redacted is the DSN with any password masked, safe to log.
	Redacted string
}

// Open parses a DSN URL such as sqlserver://host/instance?database=erp,
// opens the pool and pings it. The pool is capped at one connection so
// statements issued through it never overlap.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("empty connection string")
	}
	u, err := dburl.Parse(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connection string could not be parsed")
	}
	dialect, err := DialectFor(u.Driver)
	if err != nil {
		return nil, err
	}
	redacted := u.Redacted()

	db, err := sql.Open(dialect.Driver, u.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s database %s", dialect.Name, redacted)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "error connecting to %s database %s (ping failed)", dialect.Name, redacted)
	}

	return &DB{DB: db, Dialect: dialect, Redacted: redacted}, nil
}

// Redact returns dsn with its password masked, or a placeholder when it
// cannot be parsed.
func Redact(dsn string) string {
	u, err := dburl.Parse(dsn)
	if err != nil {
		return "<unparseable connection string>"
	}
	return u.Redacted()
}

func ConnectMongo(ctx context.Context, connString string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, errors.Wrap(err, "error creating MongoDB client")
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, errors.Wrap(err, "error connecting to MongoDB (ping failed)")
	}

	return client, nil
}
