// Package renamelog appends rename records to the plain-text audit log.
//
// The file format is fixed: a header written once when the file is created,
// then one "timestamp, source, destination" record per successful rename
// followed by a blank line. The file is only ever appended to, never
// truncated, so the history of earlier runs is preserved.
package renamelog

import (
	"fmt"
	"os"
)

// DefaultPath is the log file used when the user configures nothing else.
const DefaultPath = "log_pyFileRen.txt"

// header is written exactly once, when the log file does not exist yet.
// The misspelling is part of the on-disk format; files written by earlier
// versions of the tool carry it, so it stays.
const header = "Timestamp, Origianl file, Renamed file\n" +
	"----------------------------------------\n"

// Log is an append-only sink for rename records.
type Log struct {
	f *os.File
}

// Open opens (creating if needed) the log at path. A freshly created file
// gets the header first.
func Open(path string) (*Log, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	if fresh {
		if _, err := f.WriteString(header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &Log{f: f}, nil
}

// Record appends one rename record. timestamp is preformatted by the caller;
// the log is a dumb sink and does not interpret it.
func (l *Log) Record(timestamp, source, dest string) error {
	_, err := fmt.Fprintf(l.f, "%s, %s, %s\n\n", timestamp, source, dest)
	return err
}

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}
