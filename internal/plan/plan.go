// Package plan turns a set of user inputs into the full ordered list of
// (source, destination) rename pairs. The whole plan is computed before any
// filesystem mutation; any input change requires a full recompute, never an
// incremental patch.
package plan

import (
	"path/filepath"
	"time"

	"fileren/internal/scan"
	"fileren/internal/template"
)

// PlanningInput is everything one planning pass depends on. It is immutable
// per pass: frontends build a fresh value from their current widget/flag
// state and hand it to Compute.
type PlanningInput struct {
	Roots             []string
	IncludeSubfolders bool
	Pattern           string // glob applied per folder; "" means *.*
	Template          string // rename template; "" means [oFileN]
	DestFolder        string // optional destination override for every pair
	Now               time.Time // [ts] instant; zero means time.Now()
}

// Pair is one planned rename.
type Pair struct {
	Source string
	Dest   string
}

// Plan is the result of one planning pass. Pairs is index-aligned with
// Entries. A nil *Plan means "not yet scanned"; a Plan with zero Pairs means
// the pattern matched nothing, which is a valid state.
type Plan struct {
	Folders      []string
	SkippedRoots []scan.SkippedRoot
	Entries      []scan.FileEntry
	Pairs        []Pair
	ComputedAt   time.Time
}

// Compute runs one full planning pass: collect folders, match files, expand
// the template per entry with the sequence counters threaded through, and
// place each destination in the override folder or the entry's own folder.
// Identical inputs against identical filesystem state yield identical plans.
func Compute(in PlanningInput) (*Plan, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	folders, skipped := scan.CollectFolders(in.Roots, in.IncludeSubfolders)
	entries, err := scan.MatchFiles(folders, in.Pattern)
	if err != nil {
		return nil, err
	}

	src := in.Template
	if src == "" {
		src = template.Default
	}
	tpl := template.Parse(src)

	p := &Plan{
		Folders:      folders,
		SkippedRoots: skipped,
		Entries:      entries,
		Pairs:        make([]Pair, 0, len(entries)),
		ComputedAt:   now,
	}

	seq := template.NewSequenceState(len(entries))
	for _, entry := range entries {
		var name string
		name, seq = tpl.Expand(entry, seq, now)
		if entry.Ext != "" {
			name += "." + entry.Ext
		}
		destFolder := entry.Folder
		if in.DestFolder != "" {
			destFolder = in.DestFolder
		}
		p.Pairs = append(p.Pairs, Pair{
			Source: entry.Path,
			Dest:   filepath.Join(destFolder, name),
		})
	}
	return p, nil
}
