package locate

import "fixcheck/internal/annot"

// Status classifies a Match.
type Status uint8

const (
	// StatusFound means found == expected.
	StatusFound Status = iota
	// StatusNotFound means the fragment never matched.
	StatusNotFound
	// StatusWrongCount means it matched, but not the expected number of times.
	StatusWrongCount
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusWrongCount:
		return "wrong_count"
	default:
		return "unknown"
	}
}

// Match is the outcome of locating one ExpectedSet entry.
type Match struct {
	Fragment    annot.Fragment
	Expected    int
	Found       int
	Offsets     []int
	SourceLines []int // annotation lines of the blocks behind Expected
}

// Status derives the match status from the counts.
func (m Match) Status() Status {
	switch {
	case m.Found == m.Expected:
		return StatusFound
	case m.Found == 0:
		return StatusNotFound
	default:
		return StatusWrongCount
	}
}

// OK reports whether the fragment was found exactly as often as expected.
func (m Match) OK() bool { return m.Status() == StatusFound }

// TooMany reports whether the output holds more copies than expected.
func (m Match) TooMany() bool { return m.Found > m.Expected }

// Summary counts matches per status.
type Summary struct {
	Fragments  int
	Found      int
	NotFound   int
	WrongCount int
}

// Summarize tallies matches.
func Summarize(matches []Match) Summary {
	s := Summary{Fragments: len(matches)}
	for _, m := range matches {
		switch m.Status() {
		case StatusFound:
			s.Found++
		case StatusNotFound:
			s.NotFound++
		case StatusWrongCount:
			s.WrongCount++
		}
	}
	return s
}

// Failed returns how many fragments did not match as expected.
func (s Summary) Failed() int { return s.NotFound + s.WrongCount }
