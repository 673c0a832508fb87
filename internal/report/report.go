// Package report renders check results for humans and machines.
package report

import (
	"fmt"
	"io"

	"fixcheck/internal/check"
)

// Render writes res in the format selected by opts.
func Render(w io.Writer, res *check.Result, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return Text(w, res, opts.ShowFound)
	case FormatPretty:
		return Pretty(w, res, opts)
	case FormatJSON:
		return JSON(w, res, opts)
	case FormatShort:
		return Short(w, res, opts.ShowFound)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

// Text prints one line per mismatching fragment and, with showFound, one
// "Found fix" line per matching offset. Fragments that matched as expected
// produce nothing else.
func Text(w io.Writer, res *check.Result, showFound bool) error {
	for _, m := range res.Matches {
		if showFound {
			for _, off := range m.Offsets {
				if _, err := fmt.Fprintln(w, check.FoundMessage(m, off)); err != nil {
					return err
				}
			}
		}
		if msg := check.MismatchMessage(m); msg != "" {
			if _, err := fmt.Fprintln(w, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
