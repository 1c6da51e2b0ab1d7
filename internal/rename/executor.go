// Package rename executes a finalized plan against the filesystem, one pair
// at a time and strictly in plan order. There is no rollback: pairs renamed
// before a failure stay renamed, and the caller decides whether a failure
// stops the rest of the batch.
package rename

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fileren/internal/plan"
	"fileren/internal/renamelog"
	"fileren/internal/template"
)

// Result statuses.
const (
	StatusRenamed  = "renamed"
	StatusDryRun   = "dry-run"
	StatusSkipped  = "skip"
	StatusConflict = "conflict"
	StatusError    = "error"
)

// Sentinel causes for conflict results.
var (
	ErrDestExists  = errors.New("destination already exists")
	ErrDestClaimed = errors.New("destination already claimed by an earlier rename in this batch")
)

// Error describes one failed rename with enough context to report per file.
type Error struct {
	Source string
	Dest   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rename %s -> %s: %v", e.Source, e.Dest, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of one pair.
type Result struct {
	Pair   plan.Pair
	Status string
	Err    error // set for conflict and error statuses
}

// Options controls one execution pass.
type Options struct {
	DryRun      bool
	StopOnError bool          // abort remaining pairs on the first failure
	Log         *renamelog.Log // optional; records successes only
}

// Apply executes every pair of p in order and returns one Result per pair
// processed. With StopOnError the returned error is the failure that stopped
// the batch; otherwise the error is nil and failures are only in the results.
//
// Two checks guard against silent overwrites the OS rename would permit: a
// destination that already exists on disk, and a destination produced by an
// earlier pair of the same batch (a template with no distinguishing tokens
// maps many sources onto one name). Both surface as conflict results.
func Apply(p *plan.Plan, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(p.Pairs))
	claimed := make(map[string]string, len(p.Pairs)) // dest -> source that claimed it

	for _, pair := range p.Pairs {
		res := Result{Pair: pair}

		switch {
		case pair.Dest == pair.Source:
			res.Status = StatusSkipped
		case claimed[pair.Dest] != "":
			res.Status = StatusConflict
			res.Err = &Error{Source: pair.Source, Dest: pair.Dest, Err: ErrDestClaimed}
		case destExists(pair.Dest):
			res.Status = StatusConflict
			res.Err = &Error{Source: pair.Source, Dest: pair.Dest, Err: ErrDestExists}
		case opts.DryRun:
			claimed[pair.Dest] = pair.Source
			res.Status = StatusDryRun
		default:
			claimed[pair.Dest] = pair.Source
			if err := os.Rename(pair.Source, pair.Dest); err != nil {
				res.Status = StatusError
				res.Err = &Error{Source: pair.Source, Dest: pair.Dest, Err: err}
			} else {
				res.Status = StatusRenamed
				if opts.Log != nil {
					ts := template.Timestamp(time.Now())
					if err := opts.Log.Record(ts, pair.Source, pair.Dest); err != nil {
						return append(results, res), err
					}
				}
			}
		}

		results = append(results, res)
		if res.Err != nil && opts.StopOnError {
			return results, res.Err
		}
	}
	return results, nil
}

func destExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// SummaryLine condenses results into the one-line outcome frontends display.
func SummaryLine(results []Result, dryRun bool) string {
	var renamed, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case StatusRenamed, StatusDryRun:
			renamed++
		case StatusSkipped:
			skipped++
		default:
			failed++
		}
	}
	if dryRun {
		return fmt.Sprintf("Dry run complete. Would rename: %d, skipped: %d, conflicts/errors: %d", renamed, skipped, failed)
	}
	return fmt.Sprintf("Renamed: %d, skipped: %d, failed: %d", renamed, skipped, failed)
}
