// Package history keeps a record of sync runs in MongoDB.
package history

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/portalsync/internal/etl"
)

const Collection = "sync_runs"

type TableDocument struct {
	Table      string `bson:"table"`
	State      string `bson:"state"`
	Deleted    int64  `bson:"deleted"`
	Loaded     int    `bson:"loaded"`
	DurationMs int64  `bson:"duration_ms"`
}

type RunDocument struct {
	RunID       string          `bson:"_id"`
	StartedAt   time.Time       `bson:"started_at"`
	FinishedAt  time.Time       `bson:"finished_at"`
	Status      string          `bson:"status"`
	Tables      []TableDocument `bson:"tables"`
	FailedTable string          `bson:"failed_table,omitempty"`
	Error       string          `bson:"error,omitempty"`
}

// ToDocument converts a run report into its stored form.
func ToDocument(r *etl.RunReport) RunDocument {
	doc := RunDocument{
		RunID:       r.RunID,
		StartedAt:   r.StartedAt.UTC(),
		FinishedAt:  r.FinishedAt.UTC(),
		Status:      r.Status,
		Tables:      make([]TableDocument, 0, len(r.Tables)),
		FailedTable: r.FailedTable,
		Error:       r.Error,
	}
	for _, t := range r.Tables {
		doc.Tables = append(doc.Tables, TableDocument{
			Table:      t.Table,
			State:      t.State.String(),
			Deleted:    t.Deleted,
			Loaded:     t.Loaded,
			DurationMs: t.Duration.Milliseconds(),
		})
	}
	return doc
}

// Store implements etl.Recorder on a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

func NewStore(client *mongo.Client, database string) *Store {
	return &Store{coll: client.Database(database).Collection(Collection)}
}

// EnsureIndexes creates the index used to list recent runs.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})
	return errors.Wrap(err, "creating sync_runs index")
}

func (s *Store) Record(ctx context.Context, r *etl.RunReport) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, ToDocument(r)); err != nil {
		return errors.Wrapf(err, "recording run %s", r.RunID)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]RunDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(err, "listing sync runs")
	}
	defer cursor.Close(ctx)

	var runs []RunDocument
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.Wrap(err, "decoding sync runs")
	}
	return runs, nil
}
