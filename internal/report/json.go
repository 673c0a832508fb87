package report

import (
	"encoding/json"
	"io"

	"fixcheck/internal/annot"
	"fixcheck/internal/check"
	"fixcheck/internal/diag"
	"fixcheck/internal/locate"
	"fixcheck/internal/observ"
)

// FragmentJSON is one ExpectedSet entry with its match outcome.
type FragmentJSON struct {
	Lines       []string `json:"lines"`
	Expected    int      `json:"expected"`
	Found       int      `json:"found"`
	Offsets     []int    `json:"offsets"`
	Status      string   `json:"status"`
	TooMany     bool     `json:"too_many"`
	SourceLines []int    `json:"source_lines"`
	Message     string   `json:"message,omitempty"`
}

// SummaryJSON tallies fragment outcomes.
type SummaryJSON struct {
	Fragments  int `json:"fragments"`
	Found      int `json:"found"`
	NotFound   int `json:"not_found"`
	WrongCount int `json:"wrong_count"`
}

// Document is the JSON output of one check.
type Document struct {
	Output    string         `json:"output"`
	Source    string         `json:"source"`
	CacheHit  bool           `json:"cache_hit,omitempty"`
	Fragments []FragmentJSON `json:"fragments"`
	Summary   SummaryJSON    `json:"summary"`
	Warnings  []string       `json:"warnings,omitempty"`
	Timing    *observ.Report `json:"timing,omitempty"`
}

// BuildDocument формирует структуру JSON-вывода без сериализации.
func BuildDocument(res *check.Result, opts Options) Document {
	base := res.FileSet.BaseDir()
	doc := Document{
		Output:    res.Output().FormatPath(opts.pathMode(), base),
		Source:    res.Source().FormatPath(opts.pathMode(), base),
		CacheHit:  res.CacheHit,
		Fragments: make([]FragmentJSON, 0, len(res.Matches)),
		Summary:   summaryJSON(res.Summary()),
	}
	for _, m := range res.Matches {
		doc.Fragments = append(doc.Fragments, FragmentJSON{
			Lines:       m.Fragment.Lines(),
			Expected:    m.Expected,
			Found:       m.Found,
			Offsets:     append([]int{}, m.Offsets...),
			Status:      m.Status().String(),
			TooMany:     m.TooMany(),
			SourceLines: append([]int{}, m.SourceLines...),
			Message:     check.MismatchMessage(m),
		})
	}
	for _, d := range res.Bag.Items() {
		if d.Severity == diag.SevWarning {
			doc.Warnings = append(doc.Warnings, d.Code.ID()+": "+d.Message)
		}
	}
	if opts.Timings {
		timing := res.Timing
		doc.Timing = &timing
	}
	return doc
}

func summaryJSON(s locate.Summary) SummaryJSON {
	return SummaryJSON{Fragments: s.Fragments, Found: s.Found, NotFound: s.NotFound, WrongCount: s.WrongCount}
}

// JSON writes the indented document of one check.
func JSON(w io.Writer, res *check.Result, opts Options) error {
	return encode(w, BuildDocument(res, opts))
}

// EntryJSON is one ExpectedSet entry as printed by extract.
type EntryJSON struct {
	Lines       []string `json:"lines"`
	Count       int      `json:"count"`
	SourceLines []int    `json:"source_lines"`
}

// ExpectedJSON is the extract document.
type ExpectedJSON struct {
	Source    string      `json:"source"`
	Fragments []EntryJSON `json:"fragments"`
	Total     int         `json:"total"`
}

// BuildExpected converts an ExpectedSet for JSON output.
func BuildExpected(path string, set *annot.ExpectedSet) ExpectedJSON {
	doc := ExpectedJSON{Source: path, Fragments: make([]EntryJSON, 0, set.Len()), Total: set.Total()}
	for _, e := range set.Entries() {
		doc.Fragments = append(doc.Fragments, EntryJSON{
			Lines:       e.Fragment.Lines(),
			Count:       e.Count,
			SourceLines: append([]int{}, e.SourceLines...),
		})
	}
	return doc
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
