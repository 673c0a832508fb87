package report

import (
	"io"

	"fixcheck/internal/check"
)

// CaseJSON is one batch case in the JSON output.
type CaseJSON struct {
	Name     string    `json:"name"`
	Error    string    `json:"error,omitempty"`
	Document *Document `json:"result,omitempty"`
}

// BatchJSON is the JSON output of a batch run.
type BatchJSON struct {
	Cases  []CaseJSON `json:"cases"`
	Passed int        `json:"passed"`
	Failed int        `json:"failed"`
}

// Batch renders every case in order. Text-like formats print a "== <name>"
// header before each case and a closing tally; JSON prints one BatchJSON.
func Batch(w io.Writer, results []check.CaseResult, opts Options) error {
	if opts.Format == FormatJSON {
		return encode(w, BuildBatch(results, opts))
	}
	p := newPalette(opts.Color && opts.Format == FormatPretty)
	pw := &errWriter{w: w}
	passed := 0
	for _, r := range results {
		name := caseTitle(r.Case)
		if !r.Failed() {
			passed++
		}
		pw.printf("== %s\n", name)
		if pw.err != nil {
			return pw.err
		}
		if r.Err != nil {
			pw.printf("%s: %v\n", p.err.Sprint("error"), r.Err)
			continue
		}
		if err := Render(w, r.Result, opts); err != nil {
			return err
		}
	}
	status := p.ok.Sprint("ok")
	if passed != len(results) {
		status = p.err.Sprint("FAILED")
	}
	pw.printf("%s: %d passed, %d failed\n", status, passed, len(results)-passed)
	return pw.err
}

// BuildBatch converts batch results for JSON output.
func BuildBatch(results []check.CaseResult, opts Options) BatchJSON {
	out := BatchJSON{Cases: make([]CaseJSON, 0, len(results))}
	for _, r := range results {
		c := CaseJSON{Name: caseTitle(r.Case)}
		if r.Err != nil {
			c.Error = r.Err.Error()
		} else if r.Result != nil {
			doc := BuildDocument(r.Result, opts)
			c.Document = &doc
		}
		if r.Failed() {
			out.Failed++
		} else {
			out.Passed++
		}
		out.Cases = append(out.Cases, c)
	}
	return out
}

func caseTitle(c check.Case) string {
	if c.Name != "" {
		return c.Name
	}
	return c.SourcePath
}
