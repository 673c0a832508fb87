package testkit

import (
	"fmt"

	"fixcheck/internal/annot"
	"fixcheck/internal/locate"
)

// CheckExpectedSetInvariants runs the invariants every ExpectedSet must hold:
// 1) every fragment has at least one line
// 2) every count is >= 1 and matches the number of recorded source lines
// 3) fragments are pairwise distinct
// 4) source lines are 1-based and strictly increasing per entry
func CheckExpectedSetInvariants(set *annot.ExpectedSet) error {
	if set == nil {
		return fmt.Errorf("nil expected set")
	}
	seen := make(map[string]int, set.Len())
	for i, e := range set.Entries() {
		if e.Fragment.Len() == 0 {
			return fmt.Errorf("entry %d: empty fragment", i)
		}
		if e.Count < 1 {
			return fmt.Errorf("entry %d: non-positive count %d", i, e.Count)
		}
		if len(e.SourceLines) != e.Count {
			return fmt.Errorf("entry %d: count=%d but %d source lines", i, e.Count, len(e.SourceLines))
		}
		prev := 0
		for _, line := range e.SourceLines {
			if line <= prev {
				return fmt.Errorf("entry %d: source lines not increasing: %v", i, e.SourceLines)
			}
			prev = line
		}
		key := e.Fragment.Key()
		if j, dup := seen[key]; dup {
			return fmt.Errorf("entry %d duplicates entry %d: %s", i, j, e.Fragment)
		}
		seen[key] = i
	}
	return nil
}

// CheckMatchInvariants verifies that matches agree with the output they were
// computed from: offsets are ascending, in range, really match, and the status
// follows from expected/found.
func CheckMatchInvariants(output []string, matches []locate.Match) error {
	for i, m := range matches {
		if m.Found != len(m.Offsets) {
			return fmt.Errorf("match %d: found=%d but %d offsets", i, m.Found, len(m.Offsets))
		}
		prev := -1
		for _, off := range m.Offsets {
			if off <= prev {
				return fmt.Errorf("match %d: offsets not ascending: %v", i, m.Offsets)
			}
			prev = off
			if off < 0 || off+m.Fragment.Len() > len(output) {
				return fmt.Errorf("match %d: offset %d out of range", i, off)
			}
			if !locate.MatchesAt(output, off, m.Fragment) {
				return fmt.Errorf("match %d: fragment does not match at %d", i, off)
			}
		}
		var want locate.Status
		switch {
		case m.Found == m.Expected:
			want = locate.StatusFound
		case m.Found == 0:
			want = locate.StatusNotFound
		default:
			want = locate.StatusWrongCount
		}
		if m.Status() != want {
			return fmt.Errorf("match %d: status %s, want %s", i, m.Status(), want)
		}
	}
	return nil
}
