package report

import (
	"fmt"
	"io"

	"fixcheck/internal/check"
	"fixcheck/internal/diag"
)

// Short prints the result diagnostics in the stable short form. Info
// diagnostics (found fixes) are dropped unless showFound is set.
func Short(w io.Writer, res *check.Result, showFound bool) error {
	items := res.Bag.Items()
	if !showFound {
		kept := make([]diag.Diagnostic, 0, len(items))
		for _, d := range items {
			if d.Severity != diag.SevInfo {
				kept = append(kept, d)
			}
		}
		items = kept
	}
	out := diag.FormatShortDiagnostics(items, res.FileSet, false)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
