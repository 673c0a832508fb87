package annot

import "strings"

// DefaultPrefix is the check prefix used by clang-tidy style tests.
const DefaultPrefix = "CHECK-FIXES"

// Markers are the literal substrings that introduce fix lines.
type Markers struct {
	Primary string // opens a fragment, e.g. "CHECK-FIXES: "
	Next    string // continues it, e.g. "CHECK-FIXES-NEXT: "
}

// MarkersFor derives the primary and continuation markers from a check prefix.
// An empty prefix selects DefaultPrefix.
func MarkersFor(prefix string) Markers {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Markers{
		Primary: prefix + ": ",
		Next:    prefix + "-NEXT: ",
	}
}

// DefaultMarkers returns the CHECK-FIXES markers.
func DefaultMarkers() Markers {
	return MarkersFor(DefaultPrefix)
}

type lineKind uint8

const (
	lineOther lineKind = iota
	linePrimary
	lineNext
)

// classify tests the primary marker first, then the continuation marker,
// and returns the text after the first occurrence of the matching one.
func (m Markers) classify(line string) (lineKind, string) {
	if idx := strings.Index(line, m.Primary); idx >= 0 {
		return linePrimary, line[idx+len(m.Primary):]
	}
	if idx := strings.Index(line, m.Next); idx >= 0 {
		return lineNext, line[idx+len(m.Next):]
	}
	return lineOther, ""
}
