package rename

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
)

// WriteUndoCSV writes one row per result so a rename batch can be reversed
// by hand (or by a future undo command): swap old_path and new_path for every
// row whose status is "renamed".
func WriteUndoCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"old_path", "new_path", "old_name", "new_name", "status", "reason"})
	for _, r := range results {
		reason := ""
		if r.Err != nil {
			reason = r.Err.Error()
		}
		_ = cw.Write([]string{
			r.Pair.Source,
			r.Pair.Dest,
			filepath.Base(r.Pair.Source),
			filepath.Base(r.Pair.Dest),
			r.Status,
			reason,
		})
	}
	return cw.Error()
}

// SaveUndoCSV writes the undo CSV to path, truncating any previous file.
func SaveUndoCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteUndoCSV(f, results)
}
