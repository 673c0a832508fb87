package annot

import (
	"fixcheck/internal/source"
)

// block is the fragment being accumulated; nil when no block is open.
type block struct {
	start int
	lines []string
}

// Parse extracts the ExpectedSet from the lines of an annotated source.
// A primary marker opens a block, continuation markers extend it and any
// other line (or end of input) closes it. Malformed nesting aborts with a
// *ParseError.
func Parse(lines []string, m Markers) (*ExpectedSet, error) {
	return parse("", lines, m)
}

// ParseFile is Parse over a loaded file; errors carry the file path.
func ParseFile(f *source.File, m Markers) (*ExpectedSet, error) {
	return parse(f.Path, f.Lines(), m)
}

func parse(path string, lines []string, m Markers) (*ExpectedSet, error) {
	set := NewExpectedSet()
	var open *block

	closeBlock := func() {
		if open == nil {
			return
		}
		set.add(Fragment{lines: open.lines}, open.start)
		open = nil
	}

	for i, line := range lines {
		kind, text := m.classify(line)
		switch kind {
		case linePrimary:
			if open != nil {
				return nil, &ParseError{Path: path, Line: i + 1, Text: line, Err: ErrNestedPrimary}
			}
			open = &block{start: i + 1, lines: []string{text}}
		case lineNext:
			if open == nil {
				return nil, &ParseError{Path: path, Line: i + 1, Text: line, Err: ErrOrphanContinuation}
			}
			open.lines = append(open.lines, text)
		default:
			closeBlock()
		}
	}
	closeBlock()
	return set, nil
}
