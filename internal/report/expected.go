package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fixcheck/internal/annot"
)

// Expected prints the fixes an annotated file declares, one per line:
//
//	<fragment> count=<n> lines=<l1,l2>
//
// FormatJSON prints an ExpectedJSON document instead.
func Expected(w io.Writer, path string, set *annot.ExpectedSet, format Format) error {
	if format == FormatJSON {
		return encode(w, BuildExpected(path, set))
	}
	pw := &errWriter{w: w}
	for _, e := range set.Entries() {
		lines := make([]string, len(e.SourceLines))
		for i, l := range e.SourceLines {
			lines[i] = strconv.Itoa(l)
		}
		pw.printf("%s count=%d lines=%s\n", e.Fragment, e.Count, strings.Join(lines, ","))
	}
	if pw.err != nil {
		return pw.err
	}
	if set.Len() == 0 {
		_, err := fmt.Fprintf(w, "no fixes declared in %s\n", path)
		return err
	}
	return nil
}
