package template

import "strconv"

// SequenceState carries the two rename counters across a planning pass.
// It is a value: Expand returns the successor state and the caller threads
// it through the fold over the matched files. Nothing about it survives the
// pass.
type SequenceState struct {
	Global   int // batch-wide counter, first value 1
	InFolder int // per-folder counter, resets to 1 on folder change

	width      int
	prevFolder string
	started    bool
}

// NewSequenceState returns the starting state for a batch of total files.
// Counters are zero-padded to the decimal width of total ("12" files pads
// to two digits).
func NewSequenceState(total int) SequenceState {
	return SequenceState{
		Global:   1,
		InFolder: 1,
		width:    len(strconv.Itoa(total)),
	}
}

// EnterFolder resets the per-folder counter when folder differs from the
// previous entry's folder. The first entry of the pass never resets.
func (s SequenceState) EnterFolder(folder string) SequenceState {
	if s.started && folder != s.prevFolder {
		s.InFolder = 1
	}
	s.started = true
	s.prevFolder = folder
	return s
}

func (s SequenceState) pad(n int) string {
	str := strconv.Itoa(n)
	for len(str) < s.width {
		str = "0" + str
	}
	return str
}
