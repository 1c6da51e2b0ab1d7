package template

import (
	"testing"
	"time"

	"fileren/internal/scan"
)

func entry(folder, base, ext string) scan.FileEntry {
	name := base
	if ext != "" {
		name += "." + ext
	}
	return scan.FileEntry{
		Path:   folder + "/" + name,
		Folder: folder,
		Base:   base,
		Ext:    ext,
	}
}

var passTime = time.Date(2019, 9, 10, 16, 21, 56, 0, time.UTC)

// --- Parse ---

func TestParse_Segments(t *testing.T) {
	tpl := Parse("[oFileN]_[incNum]")
	segs := tpl.Segments()
	if len(segs) != 3 {
		t.Fatalf("segments: got %d, want 3", len(segs))
	}
	if segs[0].Token != TokenOriginalName || segs[1].Literal != "_" || segs[2].Token != TokenIncNum {
		t.Errorf("unexpected segments: %+v", segs)
	}
}

func TestParse_UnknownBracketStaysLiteral(t *testing.T) {
	tpl := Parse("[draft][ts]")
	name, _ := tpl.Expand(entry("/tmp/a", "x", "txt"), NewSequenceState(1), passTime)
	want := "[draft]2019_09_10_16_21_56"
	if name != want {
		t.Errorf("got %q, want %q", name, want)
	}
}

func TestParse_UnterminatedBracket(t *testing.T) {
	tpl := Parse("x[incNum")
	name, _ := tpl.Expand(entry("/tmp/a", "f", "txt"), NewSequenceState(1), passTime)
	if name != "x[incNum" {
		t.Errorf("got %q, want the raw text back", name)
	}
}

func TestHasToken(t *testing.T) {
	tpl := Parse("[folderN]_[incNumInFolder]")
	if !tpl.HasToken(TokenFolderName) || tpl.HasToken(TokenIncNum) {
		t.Error("HasToken misreports template contents")
	}
}

// --- Expand ---

func TestExpand_OriginalName(t *testing.T) {
	tpl := Parse("[oFileN]_copy")
	name, _ := tpl.Expand(entry("/tmp/a", "photo", "jpg"), NewSequenceState(1), passTime)
	if name != "photo_copy" {
		t.Errorf("got %q, want photo_copy", name)
	}
}

func TestExpand_FolderName(t *testing.T) {
	tpl := Parse("[folderN]")
	name, _ := tpl.Expand(entry("/tmp/album", "x", "txt"), NewSequenceState(1), passTime)
	if name != "album" {
		t.Errorf("got %q, want album", name)
	}
}

func TestExpand_GlobalCounterAcrossFolders(t *testing.T) {
	tpl := Parse("[incNum]")
	seq := NewSequenceState(3)

	var names []string
	for _, e := range []scan.FileEntry{
		entry("/tmp/a", "x", "txt"),
		entry("/tmp/a", "y", "txt"),
		entry("/tmp/b", "z", "txt"),
	} {
		var name string
		name, seq = tpl.Expand(e, seq, passTime)
		names = append(names, name)
	}

	want := []string{"1", "2", "3"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExpand_PerFolderCounterResets(t *testing.T) {
	tpl := Parse("[folderN]_[incNumInFolder]")
	seq := NewSequenceState(3)

	var names []string
	for _, e := range []scan.FileEntry{
		entry("/tmp/a", "x", "txt"),
		entry("/tmp/a", "y", "txt"),
		entry("/tmp/b", "z", "txt"),
	} {
		var name string
		name, seq = tpl.Expand(e, seq, passTime)
		names = append(names, name)
	}

	want := []string{"a_1", "a_2", "b_1"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExpand_ZeroPadding(t *testing.T) {
	tpl := Parse("[incNum]")
	seq := NewSequenceState(12) // two digits

	name, seq := tpl.Expand(entry("/tmp/a", "x", "txt"), seq, passTime)
	if name != "01" {
		t.Errorf("first: got %q, want 01", name)
	}
	for i := 0; i < 9; i++ {
		_, seq = tpl.Expand(entry("/tmp/a", "x", "txt"), seq, passTime)
	}
	name, _ = tpl.Expand(entry("/tmp/a", "x", "txt"), seq, passTime)
	if name != "11" {
		t.Errorf("eleventh: got %q, want 11", name)
	}
}

func TestExpand_AbsentTokenDoesNotAdvance(t *testing.T) {
	tpl := Parse("[oFileN]")
	seq := NewSequenceState(2)
	_, seq = tpl.Expand(entry("/tmp/a", "x", "txt"), seq, passTime)
	if seq.Global != 1 || seq.InFolder != 1 {
		t.Errorf("counters moved without their tokens: %+v", seq)
	}
}

func TestExpand_RepeatedTokenAdvancesOnce(t *testing.T) {
	tpl := Parse("[incNum]-[incNum]")
	seq := NewSequenceState(2)
	name, seq := tpl.Expand(entry("/tmp/a", "x", "txt"), seq, passTime)
	if name != "1-1" {
		t.Errorf("got %q, want 1-1", name)
	}
	if seq.Global != 2 {
		t.Errorf("Global: got %d, want 2", seq.Global)
	}
}

func TestExpand_Timestamp(t *testing.T) {
	tpl := Parse("[ts]")
	name, _ := tpl.Expand(entry("/tmp/a", "x", "txt"), NewSequenceState(1), passTime)
	if name != "2019_09_10_16_21_56" {
		t.Errorf("got %q, want 2019_09_10_16_21_56", name)
	}
}

// --- FolderName ---

func TestFolderName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/tmp/a", "a"},
		{"/tmp/a/", "a"},
		{"/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FolderName(tt.in); got != tt.want {
			t.Errorf("FolderName(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
