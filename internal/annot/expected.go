package annot

import "fmt"

// Entry is one distinct fragment of an ExpectedSet with its expected count.
// SourceLines holds the 1-based line of every block that produced it.
type Entry struct {
	Fragment    Fragment
	Count       int
	SourceLines []int
}

// ExpectedSet maps fragments to the number of times they are expected.
// Entries keep first-appearance order; counts are always >= 1.
type ExpectedSet struct {
	entries []Entry
	index   map[string]int
}

// NewExpectedSet returns an empty set.
func NewExpectedSet() *ExpectedSet {
	return &ExpectedSet{index: make(map[string]int)}
}

// FromEntries rebuilds a set from entries, merging duplicates.
// It rejects entries that would break the set invariants.
func FromEntries(entries []Entry) (*ExpectedSet, error) {
	set := NewExpectedSet()
	for i, e := range entries {
		if e.Fragment.Len() == 0 {
			return nil, fmt.Errorf("entry %d: empty fragment", i)
		}
		if e.Count < 1 {
			return nil, fmt.Errorf("entry %d: count %d < 1", i, e.Count)
		}
		if len(e.SourceLines) != 0 && len(e.SourceLines) != e.Count {
			return nil, fmt.Errorf("entry %d: %d source lines for count %d", i, len(e.SourceLines), e.Count)
		}
		set.merge(e)
	}
	return set, nil
}

func (s *ExpectedSet) merge(e Entry) {
	key := e.Fragment.Key()
	if idx, ok := s.index[key]; ok {
		s.entries[idx].Count += e.Count
		s.entries[idx].SourceLines = append(s.entries[idx].SourceLines, e.SourceLines...)
		return
	}
	s.index[key] = len(s.entries)
	lines := make([]int, len(e.SourceLines))
	copy(lines, e.SourceLines)
	s.entries = append(s.entries, Entry{Fragment: e.Fragment, Count: e.Count, SourceLines: lines})
}

// add records one more occurrence of f starting at source line line.
func (s *ExpectedSet) add(f Fragment, line int) {
	s.merge(Entry{Fragment: f, Count: 1, SourceLines: []int{line}})
}

// Len returns the number of distinct fragments.
func (s *ExpectedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Total returns the sum of all expected counts.
func (s *ExpectedSet) Total() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, e := range s.entries {
		total += e.Count
	}
	return total
}

// Entries returns the entries in first-appearance order.
// The slice is shared; callers must not modify it.
func (s *ExpectedSet) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Count returns the expected count of f, 0 when absent.
func (s *ExpectedSet) Count(f Fragment) int {
	if s == nil {
		return 0
	}
	if idx, ok := s.index[f.Key()]; ok {
		return s.entries[idx].Count
	}
	return 0
}
