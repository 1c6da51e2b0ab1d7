// Package template expands a rename template into new file names.
//
// A template is literal text interleaved with bracketed tokens such as
// "[oFileN]" or "[incNum]". It never carries the extension; that is taken
// from the source file unchanged. Templates are parsed once into a segment
// list and evaluated left-to-right, so bracket text that is not a recognized
// token stays literal.
package template

import (
	"path/filepath"
	"strings"
	"time"

	"fileren/internal/scan"
)

// Token identifies one recognized template placeholder.
type Token string

const (
	TokenOriginalName   Token = "oFileN"         // original base name, no extension
	TokenFolderName     Token = "folderN"        // last component of the containing folder
	TokenIncNum         Token = "incNum"         // batch-wide counter, zero-padded
	TokenIncNumInFolder Token = "incNumInFolder" // per-folder counter, zero-padded
	TokenTimestamp      Token = "ts"             // expansion timestamp
)

// Default is the template used when the user has not entered one.
const Default = "[" + string(TokenOriginalName) + "]"

// TimestampLayout is the [ts] token format and the audit-log record format.
const TimestampLayout = "2006_01_02_15_04_05"

// Tokens lists every recognized token in presentation order.
var Tokens = []Token{
	TokenOriginalName,
	TokenFolderName,
	TokenIncNum,
	TokenIncNumInFolder,
	TokenTimestamp,
}

// Descriptions maps each token to the label frontends show next to it.
var Descriptions = map[Token]string{
	TokenOriginalName:   "Original file-name",
	TokenFolderName:     "Folder name",
	TokenIncNum:         "Increasing Number (overall)",
	TokenIncNumInFolder: "Increasing Number (in each folder)",
	TokenTimestamp:      "Timestamp",
}

// Bracket returns the bracketed form of t as it appears in a template.
func (t Token) Bracket() string {
	return "[" + string(t) + "]"
}

// Segment is one parsed template piece: either a token or a literal run.
type Segment struct {
	Token   Token  // empty for literal segments
	Literal string // empty for token segments
}

// Template is a parsed rename template.
type Template struct {
	source   string
	segments []Segment
}

// Parse tokenizes src into literal and token segments. Unrecognized bracket
// text is kept as literal, brackets included, so user text like "[draft]"
// survives expansion untouched.
func Parse(src string) Template {
	var segs []Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Literal: lit.String()})
			lit.Reset()
		}
	}

	rest := src
	for rest != "" {
		open := strings.Index(rest, "[")
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		end := strings.Index(rest[open:], "]")
		if end < 0 {
			lit.WriteString(rest)
			break
		}
		end += open
		name := rest[open+1 : end]
		if !recognized(name) {
			lit.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		lit.WriteString(rest[:open])
		flush()
		segs = append(segs, Segment{Token: Token(name)})
		rest = rest[end+1:]
	}
	flush()

	return Template{source: src, segments: segs}
}

func recognized(name string) bool {
	for _, t := range Tokens {
		if string(t) == name {
			return true
		}
	}
	return false
}

// Source returns the original template string.
func (t Template) Source() string { return t.source }

// Segments returns the parsed segment list.
func (t Template) Segments() []Segment { return t.segments }

// HasToken reports whether tok appears in the template.
func (t Template) HasToken(tok Token) bool {
	for _, s := range t.segments {
		if s.Token == tok {
			return true
		}
	}
	return false
}

// Expand computes the new base name (no extension) for entry and returns the
// sequence state to thread into the next entry. The per-folder counter is
// reset before any token is evaluated, so the reset happens exactly when the
// entry's folder differs from the previous entry's, token or no token.
func (t Template) Expand(entry scan.FileEntry, seq SequenceState, ts time.Time) (string, SequenceState) {
	seq = seq.EnterFolder(entry.Folder)

	var b strings.Builder
	for _, s := range t.segments {
		if s.Token == "" {
			b.WriteString(s.Literal)
			continue
		}
		switch s.Token {
		case TokenOriginalName:
			b.WriteString(entry.Base)
		case TokenFolderName:
			b.WriteString(FolderName(entry.Folder))
		case TokenIncNum:
			b.WriteString(seq.pad(seq.Global))
		case TokenIncNumInFolder:
			b.WriteString(seq.pad(seq.InFolder))
		case TokenTimestamp:
			b.WriteString(Timestamp(ts))
		}
	}

	// Counters advance once per entry in which their token occurs, even if
	// the token is written several times.
	if t.HasToken(TokenIncNum) {
		seq.Global++
	}
	if t.HasToken(TokenIncNumInFolder) {
		seq.InFolder++
	}
	return b.String(), seq
}

// FolderName returns the last non-empty path component of folder, or "" when
// nothing remains after stripping empty segments.
func FolderName(folder string) string {
	parts := strings.Split(filepath.ToSlash(folder), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// Timestamp formats t the way both the [ts] token and the audit log expect.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
