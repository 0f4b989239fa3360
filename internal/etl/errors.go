package etl

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConnectivityError means a database could not be reached or authenticated to.
type ConnectivityError struct {
	Target string // "erp" or "mirror"
	DSN    string // redacted
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot connect to %s database: %v", e.Target, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }
func (e *ConnectivityError) Cause() error  { return e.Err }

// SourceQueryError means the extract query was rejected, or failed or
// returned unusable data while streaming.
type SourceQueryError struct {
	Table string
	Err   error
}

func (e *SourceQueryError) Error() string {
	return fmt.Sprintf("source query for %s failed: %v", e.Table, e.Err)
}

func (e *SourceQueryError) Unwrap() error { return e.Err }
func (e *SourceQueryError) Cause() error  { return e.Err }

// DestinationWriteError means the delete-all or an insert failed. Key is the
// business key of the rejected record and is empty for the delete-all.
type DestinationWriteError struct {
	Table string
	Key   string
	Err   error
}

func (e *DestinationWriteError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("clearing %s failed: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("writing %s row %q failed: %v", e.Table, e.Key, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }
func (e *DestinationWriteError) Cause() error  { return e.Err }

// RunError is the single failure a run reports. It names the table whose sync failed.
type RunError struct {
	Table string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("sync of table %s failed: %v", e.Table, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
func (e *RunError) Cause() error  { return e.Err }

// Causes lists the message of err followed by the message of every error it
// wraps. Layers that add nothing to the message (stack annotations) are skipped.
func Causes(err error) []string {
	var out []string
	for err != nil {
		msg := err.Error()
		if len(out) == 0 || out[len(out)-1] != msg {
			out = append(out, msg)
		}
		err = errors.Unwrap(err)
	}
	return out
}
