// Package locate finds expected fix fragments in tool output.
//
// A fragment matches at offset i when the output has at least len(fragment)
// lines starting at i and every output line contains the corresponding
// fragment line as a literal substring. Every matching offset counts,
// including overlapping ones.
package locate

import (
	"strings"

	"fixcheck/internal/annot"
)

// MatchesAt reports whether frag matches output starting at line offset i.
// A run truncated by the end of output never matches.
func MatchesAt(output []string, i int, frag annot.Fragment) bool {
	if i < 0 || frag.Len() == 0 || i+frag.Len() > len(output) {
		return false
	}
	for k := 0; k < frag.Len(); k++ {
		if !strings.Contains(output[i+k], frag.Line(k)) {
			return false
		}
	}
	return true
}

// Offsets returns every offset at which frag matches, ascending.
func Offsets(output []string, frag annot.Fragment) []int {
	var offsets []int
	for i := range output {
		if MatchesAt(output, i, frag) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// Count returns the number of offsets at which frag matches.
func Count(output []string, frag annot.Fragment) int {
	n := 0
	for i := range output {
		if MatchesAt(output, i, frag) {
			n++
		}
	}
	return n
}

// Locate evaluates every entry of set against output independently and
// returns one Match per entry, in set order.
func Locate(output []string, set *annot.ExpectedSet) []Match {
	entries := set.Entries()
	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		offsets := Offsets(output, e.Fragment)
		matches = append(matches, Match{
			Fragment:    e.Fragment,
			Expected:    e.Count,
			Found:       len(offsets),
			Offsets:     offsets,
			SourceLines: e.SourceLines,
		})
	}
	return matches
}
