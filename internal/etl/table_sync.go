package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/logger"
)

// State is the progress of one table sync.
type State int

const (
	NotStarted State = iota
	Cleared
	Loading
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Cleared:
		return "cleared"
	case Loading:
		return "loading"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var transitions = map[State][]State{
	NotStarted: {Cleared, Failed},
	Cleared:    {Loading, Failed},
	Loading:    {Done, Failed},
}

// CanTransition reports whether a table sync may move from one state to another.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TableReport summarises one table sync.
type TableReport struct {
	Table    string
	State    State
	Deleted  int64
	Loaded   int
	Duration time.Duration
}

// TableSync refreshes one mirror table: clear it, then stream the extract
// into it row by row. It owns its own source and destination connections.
type TableSync struct {
	Table       Table
	SourceDSN   string
	DestDSN     string
	WindowYears int
	Open        Opener

	report TableReport
	start  time.Time
}

func (s *TableSync) advance(to State) {
	if !CanTransition(s.report.State, to) {
		panic(fmt.Sprintf("table sync %s: illegal transition %s -> %s", s.Table.Name(), s.report.State, to))
	}
	logger.Debugf("%s: %s -> %s", s.Table.Name(), s.report.State, to)
	s.report.State = to
}

func (s *TableSync) fail(err error) (TableReport, error) {
	s.advance(Failed)
	s.report.Duration = time.Since(s.start)
	return s.report, err
}

// Run performs the sync and returns its report. On failure the report's
// state is Failed and rows loaded before the failure stay in the mirror.
func (s *TableSync) Run(ctx context.Context) (TableReport, error) {
	name := s.Table.Name()
	s.start = time.Now()
	s.report = TableReport{Table: name, State: NotStarted}

	src, err := s.Open(ctx, s.SourceDSN)
	if err != nil {
		return s.fail(&ConnectivityError{Target: "erp", DSN: database.Redact(s.SourceDSN), Err: err})
	}
	defer src.Close()

	dst, err := s.Open(ctx, s.DestDSN)
	if err != nil {
		return s.fail(&ConnectivityError{Target: "mirror", DSN: database.Redact(s.DestDSN), Err: err})
	}
	defer dst.Close()

	deleted, err := ClearTable(ctx, dst, name)
	if err != nil {
		return s.fail(err)
	}
	s.report.Deleted = deleted
	s.advance(Cleared)
	logger.WithFields(logger.Fields{"table": name, "deleted": deleted}).Infof("Cleared %d existing rows from %s", deleted, name)

	extract, err := OpenExtract(ctx, src, name, s.Table.Query(src.Dialect, s.WindowYears))
	if err != nil {
		return s.fail(err)
	}
	defer extract.Close()
	s.advance(Loading)

	loader := NewRowLoader(dst, name)
	for extract.Next() {
		rec, err := s.Table.Record(extract.Row())
		if err != nil {
			return s.fail(&SourceQueryError{Table: name, Err: err})
		}
		res := loader.Load(ctx, rec)
		if !res.OK() {
			return s.fail(res.Err)
		}
		s.report.Loaded++
	}
	if err := extract.Err(); err != nil {
		return s.fail(err)
	}

	s.advance(Done)
	s.report.Duration = time.Since(s.start)
	return s.report, nil
}
