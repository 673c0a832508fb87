package annot

import (
	"strconv"
	"strings"
)

// Fragment is an ordered, immutable sequence of literal lines that must appear
// on consecutive lines of the tool output. Equality is structural.
type Fragment struct {
	lines []string
}

// NewFragment copies lines into a new Fragment.
func NewFragment(lines ...string) Fragment {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Fragment{lines: cp}
}

// Len returns the number of lines in the fragment.
func (f Fragment) Len() int { return len(f.lines) }

// Line returns the i-th line (0-based).
func (f Fragment) Line(i int) string { return f.lines[i] }

// Lines returns a copy of the fragment lines.
func (f Fragment) Lines() []string {
	cp := make([]string, len(f.lines))
	copy(cp, f.lines)
	return cp
}

// Key returns a value that is equal for two fragments iff they are equal.
// Lines never contain '\n', so joining on it is unambiguous.
func (f Fragment) Key() string {
	return strings.Join(f.lines, "\n")
}

// Equal reports structural equality.
func (f Fragment) Equal(other Fragment) bool {
	if len(f.lines) != len(other.lines) {
		return false
	}
	for i := range f.lines {
		if f.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}

// String renders the fragment as a bracketed list of quoted lines,
// e.g. ["foo(a, b);", "bar();"].
func (f Fragment) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, line := range f.lines {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(line))
	}
	b.WriteByte(']')
	return b.String()
}
