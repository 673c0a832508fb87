package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fixcheck/internal/check"
	"fixcheck/internal/diag"
	"fixcheck/internal/locate"
	"fixcheck/internal/source"
)

type palette struct {
	path   *color.Color
	err    *color.Color
	found  *color.Color
	code   *color.Color
	gutter *color.Color
	note   *color.Color
	ok     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		found:  color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgYellow),
		ok:     color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.err, p.found, p.code, p.gutter, p.note, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty печатает каждый несовпавший фрагмент блоком:
//
//	<path>:<line>: error FIX1002: <message>
//	   | <fragment line>
//	  note: <path>:<line>: <note>
//
// и итоговую строку со счётчиками.
func Pretty(w io.Writer, res *check.Result, opts Options) error {
	p := newPalette(opts.Color)
	pw := &errWriter{w: w}
	src, out := res.Source(), res.Output()

	for _, m := range res.Matches {
		at := sourceLocation(src, m.SourceLines, 0, opts, res.FileSet.BaseDir())
		if opts.ShowFound {
			for _, off := range m.Offsets {
				pw.printf("%s: %s %s: %s\n", p.path.Sprint(at), p.found.Sprint("found"),
					p.code.Sprint(diag.FixFound.ID()), check.FoundMessage(m, off))
			}
		}
		msg := check.MismatchMessage(m)
		if msg == "" {
			continue
		}
		code := diag.FixNotFound
		if m.Status() == locate.StatusWrongCount {
			code = diag.FixWrongCount
		}
		pw.printf("%s: %s %s: %s\n", p.path.Sprint(at), p.err.Sprint("error"), p.code.Sprint(code.ID()), msg)
		for _, line := range m.Fragment.Lines() {
			pw.printf("   %s %s\n", p.gutter.Sprint("|"), truncate(line, opts.Width))
		}
		for i := 1; i < len(m.SourceLines); i++ {
			pw.printf("  %s %s: also expected here\n", p.note.Sprint("note:"),
				sourceLocation(src, m.SourceLines, i, opts, res.FileSet.BaseDir()))
		}
		for _, off := range m.Offsets {
			pw.printf("  %s %s: found here\n", p.note.Sprint("note:"),
				out.FormatPath(opts.pathMode(), res.FileSet.BaseDir())+":"+strconv.Itoa(off+1))
		}
	}

	sum := res.Summary()
	status := p.ok.Sprint("ok")
	if sum.Failed() > 0 {
		status = p.err.Sprint("FAILED")
	}
	pw.printf("%s: %s\n", status, summaryLine(sum))
	return pw.err
}

func summaryLine(s locate.Summary) string {
	return fmt.Sprintf("%d fragments, %d found, %d not found, %d wrong count",
		s.Fragments, s.Found, s.NotFound, s.WrongCount)
}

func sourceLocation(f *source.File, lines []int, i int, opts Options, baseDir string) string {
	path := f.FormatPath(opts.pathMode(), baseDir)
	if i >= len(lines) {
		return path
	}
	return path + ":" + strconv.Itoa(lines[i])
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
