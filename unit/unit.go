package unit

import (
	"path/filepath"
	"strings"
)

// CodeUnit represents one source file under correction, holding both the
// immutable original text and the current (possibly fixed) text.
type CodeUnit struct {
	ID       string   // unit identifier, conventionally a path
	Original string   // text at session start, never mutated
	Current  string   // working text, mutated only by the fix applier
	Language string   // language tag derived from the unit path
	Tags     []string // optional environment tags supplied by the caller
}

// New creates a code unit from a path and its source text
func New(id string, text string) *CodeUnit {
	return &CodeUnit{
		ID:       id,
		Original: text,
		Current:  text,
		Language: LanguageOf(id),
	}
}

// Clone returns an independent copy of the unit
func (u *CodeUnit) Clone() *CodeUnit {
	clone := *u
	clone.Tags = append([]string(nil), u.Tags...)
	return &clone
}

// Changed reports whether the current text differs from the original
func (u *CodeUnit) Changed() bool {
	return u.Current != u.Original
}

// LanguageOf derives a language tag from a file path extension
func LanguageOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".jsx":
		return "javascript"
	case ".java":
		return "java"
	default:
		return ""
	}
}

// Span identifies a half-open byte range [Start, End) within a unit's text
type Span struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Overlaps reports whether two spans share at least one byte index
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Len returns the span length in bytes
func (s Span) Len() int {
	return s.End - s.Start
}

// LineAt returns the 1-based line number of a byte offset within text
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
