// Package scan discovers the folders and files a rename batch operates on.
//
// Collection and matching are strictly ordered so that repeated scans of an
// unchanged filesystem produce identical results: roots keep their selection
// order, sub-folders are appended in pre-order listing order, and matches are
// folder-major with no global sort across folders.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches every file with an extension in a folder's top level.
const DefaultPattern = "*.*"

// FileEntry is one matched source file with its derived naming parts.
// Entries are rebuilt from scratch on every scan and never persisted.
type FileEntry struct {
	Path   string // absolute source path
	Folder string // containing folder
	Base   string // name up to the first dot
	Ext    string // extension after the last dot, without the dot
}

// SkippedRoot records a selected root that could not be collected.
type SkippedRoot struct {
	Path string
	Err  error
}

func (s SkippedRoot) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// NormalizeRoot strips the disk/volume-name prefix some native multi-folder
// pickers prepend ("Macintosh HD/tmp" instead of "/tmp"), so the path starts
// from the filesystem root separator.
func NormalizeRoot(p string) string {
	if i := strings.Index(p, "/"); i > 0 {
		return p[i:]
	}
	return p
}

// CollectFolders expands the user-selected roots into the ordered folder set.
// Each root appears before its sub-folders; with includeSub the subtree is
// traversed depth-first in listing order before the next sibling root.
// Roots that do not exist or are not directories are returned in skipped and
// collection continues. Duplicate paths are dropped.
func CollectFolders(roots []string, includeSub bool) (folders []string, skipped []SkippedRoot) {
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			folders = append(folders, p)
		}
	}

	for _, root := range roots {
		root, info, err := statRoot(root)
		if err != nil {
			skipped = append(skipped, SkippedRoot{Path: root, Err: err})
			continue
		}
		if !info.IsDir() {
			skipped = append(skipped, SkippedRoot{Path: root, Err: fmt.Errorf("not a directory")})
			continue
		}
		add(root)
		if includeSub {
			for _, sub := range subFolders(root) {
				add(sub)
			}
		}
	}
	return folders, skipped
}

// statRoot stats root as given and, when that fails, retries with the picker
// prefix stripped. Plain relative paths that do exist are left alone.
func statRoot(root string) (string, os.FileInfo, error) {
	info, err := os.Stat(root)
	if err != nil {
		if norm := NormalizeRoot(root); norm != root {
			if ninfo, nerr := os.Stat(norm); nerr == nil {
				return norm, ninfo, nil
			}
		}
	}
	return root, info, err
}

// subFolders returns every directory below dir in pre-order listing order.
// Unreadable directories contribute nothing; the scan moves on.
func subFolders(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		out = append(out, sub)
		out = append(out, subFolders(sub)...)
	}
	return out
}

// MatchFiles globs pattern inside each folder and returns the matched files
// in folder-major order. Directories are excluded. Zero matches is a valid
// result; the only error is a malformed pattern.
func MatchFiles(folders []string, pattern string) ([]FileEntry, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	var entries []FileEntry
	for _, folder := range folders {
		matches, err := filepath.Glob(filepath.Join(folder, pattern))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			entries = append(entries, NewFileEntry(m))
		}
	}
	return entries, nil
}

// NewFileEntry derives the naming parts of one matched path.
func NewFileEntry(path string) FileEntry {
	base, ext := SplitName(filepath.Base(path))
	return FileEntry{
		Path:   path,
		Folder: filepath.Dir(path),
		Base:   base,
		Ext:    ext,
	}
}

// SplitName splits a file name into base and extension. The base is
// everything before the first dot and the extension everything after the
// last, so "a.b.txt" yields ("a", "txt") with the middle segment dropped.
// A name without a dot has an empty extension.
func SplitName(name string) (base, ext string) {
	first := strings.Index(name, ".")
	if first < 0 {
		return name, ""
	}
	last := strings.LastIndex(name, ".")
	return name[:first], name[last+1:]
}
