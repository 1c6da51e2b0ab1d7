package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Item statuses assigned by Check. Execution re-validates; these exist so a
// frontend can warn before the user commits.
const (
	StatusOK           = "ok"
	StatusUnchanged    = "unchanged"
	StatusInvalidName  = "invalid"
	StatusDuplicate    = "duplicate"
	StatusTargetExists = "target-exists"
)

// CheckedPair is a Pair annotated with its pre-execution status.
type CheckedPair struct {
	Pair
	Status string
	Reason string
}

// Summary aggregates the pre-execution check for a confirmation prompt.
type Summary struct {
	Total        int
	Renamable    int
	Unchanged    int
	Invalid      []string
	Duplicate    []string
	TargetExists []string
}

// Check annotates every pair in p. A destination claimed by more than one
// source (a template with no distinguishing tokens, for instance) marks every
// claimant as a duplicate rather than letting a later rename overwrite an
// earlier one. A destination that already exists on disk is flagged unless it
// is the source itself.
func Check(p *Plan) ([]CheckedPair, Summary) {
	dupCount := make(map[string]int, len(p.Pairs))
	for _, pair := range p.Pairs {
		dupCount[pair.Dest]++
	}

	var sum Summary
	sum.Total = len(p.Pairs)

	checked := make([]CheckedPair, 0, len(p.Pairs))
	for _, pair := range p.Pairs {
		cp := CheckedPair{Pair: pair, Status: StatusOK}
		line := fmt.Sprintf("%s -> %s", pair.Source, pair.Dest)

		switch {
		case pair.Dest == pair.Source:
			cp.Status = StatusUnchanged
			cp.Reason = "destination equals source"
			sum.Unchanged++
		case invalidNameReason(filepath.Base(pair.Dest)) != "":
			cp.Status = StatusInvalidName
			cp.Reason = invalidNameReason(filepath.Base(pair.Dest))
			sum.Invalid = append(sum.Invalid, line+" ("+cp.Reason+")")
		case dupCount[pair.Dest] > 1:
			cp.Status = StatusDuplicate
			cp.Reason = "same destination as another file"
			sum.Duplicate = append(sum.Duplicate, line)
		case targetExists(pair.Dest):
			cp.Status = StatusTargetExists
			cp.Reason = "destination already exists on disk"
			sum.TargetExists = append(sum.TargetExists, line)
		default:
			sum.Renamable++
		}
		checked = append(checked, cp)
	}
	return checked, sum
}

func targetExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// invalidNameReason reports why name cannot be used as a file name, or ""
// when it is acceptable.
func invalidNameReason(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.TrimLeft(trimmed, ".") == "" {
		return "empty name"
	}
	if strings.ContainsAny(trimmed, `<>:"|?*`) || strings.ContainsRune(trimmed, 0) {
		return "invalid characters"
	}
	return ""
}

// ConfirmMessage renders sum as the text of a confirmation prompt.
func ConfirmMessage(sum Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "About to process %d file(s).\n", sum.Total)
	fmt.Fprintf(&b, "Will rename: %d\n", sum.Renamable)
	fmt.Fprintf(&b, "Unchanged (skipped): %d\n", sum.Unchanged)

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString("\n" + title + "\n")
		for _, s := range firstN(lines, 20) {
			b.WriteString(" - " + s + "\n")
		}
		if len(lines) > 20 {
			fmt.Fprintf(&b, " ... and %d more\n", len(lines)-20)
		}
	}
	section("Invalid names (skipped):", sum.Invalid)
	section("Duplicate destinations (skipped):", sum.Duplicate)
	section("Destination already exists (skipped):", sum.TargetExists)

	b.WriteString("\nProceed?")
	return b.String()
}

func firstN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
