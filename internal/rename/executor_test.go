package rename

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fileren/internal/plan"
	"fileren/internal/renamelog"
)

var passTime = time.Date(2019, 9, 10, 16, 21, 56, 0, time.UTC)

func mkFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func computePlan(t *testing.T, dir, pattern, tpl string) *plan.Plan {
	t.Helper()
	p, err := plan.Compute(plan.PlanningInput{
		Roots:    []string{dir},
		Pattern:  pattern,
		Template: tpl,
		Now:      passTime,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestApply_RenamesInOrder(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "x.txt"))
	mkFile(t, filepath.Join(tmp, "y.txt"))

	p := computePlan(t, tmp, "*.txt", "[oFileN]_done")
	results, err := Apply(p, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Status != StatusRenamed {
			t.Errorf("%s: status %q, want %q", r.Pair.Source, r.Status, StatusRenamed)
		}
		if _, err := os.Stat(r.Pair.Dest); err != nil {
			t.Errorf("destination %s missing: %v", r.Pair.Dest, err)
		}
		if _, err := os.Stat(r.Pair.Source); !os.IsNotExist(err) {
			t.Errorf("source %s still present", r.Pair.Source)
		}
	}
}

func TestApply_WritesLogRecords(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "x.txt"))

	logPath := filepath.Join(t.TempDir(), "rename.log")
	log, err := renamelog.Open(logPath)
	if err != nil {
		t.Fatal(err)
	}

	p := computePlan(t, tmp, "*.txt", "[oFileN]_done")
	if _, err := Apply(p, Options{Log: log}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "Timestamp, Origianl file, Renamed file\n") {
		t.Errorf("log missing header:\n%s", content)
	}
	if !strings.Contains(content, filepath.Join(tmp, "x.txt")+", "+filepath.Join(tmp, "x_done.txt")) {
		t.Errorf("log missing rename record:\n%s", content)
	}
}

func TestApply_DryRunTouchesNothing(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "x.txt")
	mkFile(t, src)

	p := computePlan(t, tmp, "*.txt", "[oFileN]_done")
	results, err := Apply(p, Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusDryRun {
		t.Errorf("status: got %q, want %q", results[0].Status, StatusDryRun)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("dry run moved the source: %v", err)
	}
}

func TestApply_SkipsUnchanged(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "x.txt"))

	p := computePlan(t, tmp, "*.txt", "[oFileN]")
	results, err := Apply(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusSkipped {
		t.Errorf("status: got %q, want %q", results[0].Status, StatusSkipped)
	}
}

func TestApply_ConflictWhenDestExists(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "x.txt")
	mkFile(t, src)
	mkFile(t, filepath.Join(tmp, "x_done.txt"))

	p := computePlan(t, tmp, "x.txt", "[oFileN]_done")
	results, err := Apply(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status != StatusConflict {
		t.Fatalf("status: got %q, want %q", results[0].Status, StatusConflict)
	}
	if !errors.Is(results[0].Err, ErrDestExists) {
		t.Errorf("err: got %v, want ErrDestExists", results[0].Err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("conflicting source was moved: %v", err)
	}
}

func TestApply_LiteralTemplateNoSilentOverwrite(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "x.txt"))
	mkFile(t, filepath.Join(tmp, "y.txt"))

	p := computePlan(t, tmp, "*.txt", "same")
	results, err := Apply(p, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if results[0].Status != StatusRenamed {
		t.Errorf("first: got %q, want %q", results[0].Status, StatusRenamed)
	}
	if results[1].Status != StatusConflict {
		t.Errorf("second: got %q, want %q", results[1].Status, StatusConflict)
	}
	if !errors.Is(results[1].Err, ErrDestClaimed) {
		t.Errorf("second err: got %v, want ErrDestClaimed", results[1].Err)
	}
	// The file renamed first must still hold its content's place; the second
	// source must be untouched.
	if _, err := os.Stat(filepath.Join(tmp, "y.txt")); err != nil {
		t.Errorf("second source was moved despite conflict: %v", err)
	}
}

func TestApply_StopOnError(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "x.txt"))
	mkFile(t, filepath.Join(tmp, "y.txt"))
	mkFile(t, filepath.Join(tmp, "x_done.txt")) // forces a conflict on x

	p := computePlan(t, tmp, "?.txt", "[oFileN]_done")
	results, err := Apply(p, Options{StopOnError: true})
	if err == nil {
		t.Fatal("expected the conflict to stop the batch")
	}
	if len(results) != 1 {
		t.Errorf("results: got %d, want 1 (batch aborted)", len(results))
	}

	// Without StopOnError the rest of the batch still runs.
	results, err = Apply(p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("results: got %d, want 2", len(results))
	}
	if results[1].Status != StatusRenamed {
		t.Errorf("second pair: got %q, want %q", results[1].Status, StatusRenamed)
	}
}

func TestSummaryLine(t *testing.T) {
	results := []Result{
		{Status: StatusRenamed},
		{Status: StatusSkipped},
		{Status: StatusConflict, Err: errors.New("boom")},
	}
	line := SummaryLine(results, false)
	if !strings.Contains(line, "Renamed: 1") || !strings.Contains(line, "failed: 1") {
		t.Errorf("unexpected summary: %q", line)
	}
}

func TestWriteUndoCSV(t *testing.T) {
	var sb strings.Builder
	results := []Result{{
		Pair:   plan.Pair{Source: "/a/x.txt", Dest: "/a/y.txt"},
		Status: StatusRenamed,
	}}
	if err := WriteUndoCSV(&sb, results); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "old_path,new_path,old_name,new_name,status,reason\n") {
		t.Errorf("missing CSV header:\n%s", out)
	}
	if !strings.Contains(out, "/a/x.txt,/a/y.txt,x.txt,y.txt,renamed,") {
		t.Errorf("missing row:\n%s", out)
	}
}
