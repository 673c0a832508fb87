package check

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"fixcheck/internal/annot"
	"fixcheck/internal/cache"
	"fixcheck/internal/diag"
	"fixcheck/internal/locate"
	"fixcheck/internal/source"
)

// FoundMessage is the line printed for a fragment matched at offset.
func FoundMessage(m locate.Match, offset int) string {
	return fmt.Sprintf("Found fix %s at %d", m.Fragment, offset)
}

// MismatchMessage is the line printed for a fragment whose count is off.
// It returns "" when the fragment matched as expected.
func MismatchMessage(m locate.Match) string {
	switch m.Status() {
	case locate.StatusNotFound:
		return fmt.Sprintf("Did not find %s", m.Fragment)
	case locate.StatusWrongCount:
		return fmt.Sprintf("Did not find %s the correct number of times count=%d found=%d too_many=%s",
			m.Fragment, m.Expected, m.Found, pyBool(m.TooMany()))
	default:
		return ""
	}
}

// pyBool keeps the True/False spelling existing log scrapers grep for.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// reportMatches records one FIX diagnostic per found offset and one per
// mismatching fragment. Spans point at the annotation lines; notes point at
// the other blocks of a duplicated fragment and at the output lines found.
func reportMatches(res *Result) {
	r := diag.BagReporter{Bag: res.Bag}
	src := res.Source()
	out := res.Output()

	for _, m := range res.Matches {
		primary, extra := annotationSpans(src, m.SourceLines, m.Fragment.Len())
		for _, off := range m.Offsets {
			b := diag.ReportInfo(r, diag.FixFound, primary, FoundMessage(m, off))
			if sp, ok := lineSpan(out, off+1); ok {
				b.WithNote(sp, "matched here")
			}
			b.Emit()
		}

		msg := MismatchMessage(m)
		if msg == "" {
			continue
		}
		code := diag.FixNotFound
		if m.Status() == locate.StatusWrongCount {
			code = diag.FixWrongCount
		}
		b := diag.ReportError(r, code, primary, msg)
		for _, sp := range extra {
			b.WithNote(sp, "also expected here")
		}
		for _, off := range m.Offsets {
			if sp, ok := lineSpan(out, off+1); ok {
				b.WithNote(sp, "found here")
			}
		}
		b.Emit()
	}
}

// annotationSpans returns the span of the first block declaring a fragment
// and the spans of the others. Each span covers the whole block.
func annotationSpans(f *source.File, lines []int, blockLen int) (source.Span, []source.Span) {
	primary := source.Span{File: f.ID}
	var extra []source.Span
	for i, line := range lines {
		sp, ok := blockSpan(f, line, blockLen)
		if !ok {
			continue
		}
		if i == 0 {
			primary = sp
			continue
		}
		extra = append(extra, sp)
	}
	return primary, extra
}

func blockSpan(f *source.File, first, n int) (source.Span, bool) {
	sp, ok := lineSpan(f, first)
	if !ok {
		return source.Span{}, false
	}
	if last, ok := lineSpan(f, first+n-1); ok && n > 1 {
		sp = sp.Cover(last)
	}
	return sp, true
}

// reportParseError turns a fatal annotation error into an ANN diagnostic.
func reportParseError(res *Result, err error) {
	var perr *annot.ParseError
	if !errors.As(err, &perr) {
		return
	}
	code := diag.AnnNestedPrimary
	if errors.Is(err, annot.ErrOrphanContinuation) {
		code = diag.AnnOrphanContinuation
	}
	sp, ok := lineSpan(res.Source(), perr.Line)
	if !ok {
		sp = source.Span{File: res.SourceFile}
	}
	diag.ReportError(diag.BagReporter{Bag: res.Bag}, code, sp, perr.Err.Error()).Emit()
}

// lineSpan resolves a 1-based line number to its span.
func lineSpan(f *source.File, line int) (source.Span, bool) {
	n, err := safecast.Conv[uint32](line)
	if err != nil {
		return source.Span{}, false
	}
	return f.LineSpan(n)
}

// reportCacheError records a warning on the annotated file; the check itself
// goes on with the freshly parsed set.
func reportCacheError(res *Result, c *cache.Cache, err error) {
	sp := source.Span{File: res.SourceFile}
	if f := res.Source(); f != nil {
		if line, ok := lineSpan(f, 1); ok {
			sp = line
		}
	}
	msg := fmt.Sprintf("could not store annotations in %s: %v", c.Dir(), err)
	diag.NewReportBuilder(diag.BagReporter{Bag: res.Bag}, diag.SevWarning, diag.IOCacheError, sp, msg).Emit()
}
