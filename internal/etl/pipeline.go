package etl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BartekS5/portalsync/internal/config"
	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/logger"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// RunReport is the outcome of one run across all tables.
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Tables     []TableReport
	// FailedTable and Error are set when Status is StatusFailed.
	FailedTable string
	Error       string
}

func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Pipeline runs the table syncs one after another in a fixed order and
// stops at the first failure.
type Pipeline struct {
	Config   *config.Config
	Tables   []Table
	Open     Opener
	Recorder Recorder
}

// NewPipeline creates a pipeline over DefaultTables using real database connections.
// rec may be nil.
func NewPipeline(cfg *config.Config, rec Recorder) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Tables:   DefaultTables,
		Open:     database.Open,
		Recorder: rec,
	}
}

// Run syncs every table. On failure the returned error is a *RunError naming
// the table, and tables after it are not touched. The report is returned in
// both cases.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := logger.WithFields(logger.Fields{"run_id": report.RunID})
	log.Infof("CustomerPortal sync started: %s", report.StartedAt.Format(time.DateTime))

	var runErr *RunError
	for _, t := range p.Tables {
		log.WithField("table", t.Name()).Infof("Starting %s sync...", t.Name())

		ts := &TableSync{
			Table:       t,
			SourceDSN:   p.Config.ERPConnString,
			DestDSN:     p.Config.MirrorConnString,
			WindowYears: p.Config.WindowYears,
			Open:        p.Open,
		}
		tr, err := ts.Run(ctx)
		report.Tables = append(report.Tables, tr)
		if err != nil {
			runErr = &RunError{Table: t.Name(), Err: err}
			break
		}

		log.WithFields(logger.Fields{
			"table":    t.Name(),
			"rows":     tr.Loaded,
			"duration": tr.Duration.Round(time.Millisecond),
		}).Infof("Inserted %d rows into mirror table %s", tr.Loaded, t.Name())
	}

	report.FinishedAt = time.Now()
	if runErr != nil {
		report.Status = StatusFailed
		report.FailedTable = runErr.Table
		report.Error = runErr.Error()
		log.WithField("table", runErr.Table).Errorf("Sync failed: %s: %v", report.FinishedAt.Format(time.DateTime), runErr)
	} else {
		report.Status = StatusSuccess
		for _, tr := range report.Tables {
			log.WithFields(logger.Fields{"table": tr.Table, "rows": tr.Loaded}).Info("Table total")
		}
		log.WithField("duration", report.Duration().Round(time.Millisecond)).
			Infof("Sync completed successfully: %s", report.FinishedAt.Format(time.DateTime))
	}

	p.record(ctx, report)

	if runErr != nil {
		return report, runErr
	}
	return report, nil
}

func (p *Pipeline) record(ctx context.Context, report *RunReport) {
	if p.Recorder == nil {
		return
	}
	if err := p.Recorder.Record(ctx, report); err != nil {
		logger.Warnf("Could not record run %s in history: %v", report.RunID, err)
	}
}
