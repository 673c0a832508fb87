// Package check runs the fixcheck pipeline: read the tool output and the
// annotated source, extract the expected fixes, and locate each of them.
package check

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fixcheck/internal/annot"
	"fixcheck/internal/cache"
	"fixcheck/internal/diag"
	"fixcheck/internal/locate"
	"fixcheck/internal/observ"
	"fixcheck/internal/source"
	"fixcheck/internal/trace"
)

// ErrMismatch is returned by callers that run in strict mode when some
// fragment was not found the expected number of times.
var ErrMismatch = errors.New("some fixes were not found the expected number of times")

// Request describes one check.
type Request struct {
	Name       string // case name for progress and tracing; defaults to SourcePath
	OutputPath string // tool output
	SourcePath string // annotated source
	Markers    annot.Markers
	Normalize  source.Normalization
	BaseDir    string       // directory paths are rendered against
	Cache      *cache.Cache // nil disables the cache
	Progress   ProgressSink
}

// Result is the outcome of one check.
type Result struct {
	FileSet    *source.FileSet
	OutputFile source.FileID
	SourceFile source.FileID
	Expected   *annot.ExpectedSet
	Matches    []locate.Match
	Bag        *diag.Bag
	Timing     observ.Report
	CacheHit   bool
}

// Output returns the tool-output file.
func (r *Result) Output() *source.File { return r.FileSet.Get(r.OutputFile) }

// Source returns the annotated source file.
func (r *Result) Source() *source.File { return r.FileSet.Get(r.SourceFile) }

// Summary tallies the matches.
func (r *Result) Summary() locate.Summary { return locate.Summarize(r.Matches) }

// Failed reports whether any fragment did not match as expected.
func (r *Result) Failed() bool { return r.Summary().Failed() > 0 }

func (req *Request) name() string {
	if req.Name != "" {
		return req.Name
	}
	return req.SourcePath
}

// Run performs one check. Missing or unreadable files and malformed
// annotations are fatal and returned as errors; in the annotation case the
// returned Result is non-nil and its Bag holds the matching ANN diagnostic.
// Fragment mismatches are not errors: they are recorded in Result.Bag and
// every fragment is still checked.
func Run(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("check: nil request")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := req.name()
	markers := req.Markers
	if markers.Primary == "" || markers.Next == "" {
		markers = annot.DefaultMarkers()
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeCase, "check:"+name, trace.CurrentSpan(ctx))
	defer runSpan.End("")

	timer := observ.NewTimer()
	fs := source.NewFileSet()
	fs.SetBaseDir(req.BaseDir)
	fs.SetNormalization(req.Normalize)
	res := &Result{FileSet: fs, Bag: diag.NewBag(0)}

	// read
	emit(req.Progress, Event{Case: name, Stage: StageRead, Status: StatusWorking})
	span := trace.Begin(tracer, trace.ScopePhase, "read", runSpan.ID())
	idx := timer.Begin("read")
	outID, err := fs.Load(req.OutputPath)
	if err != nil {
		err = fmt.Errorf("tool output: %w", err)
		span.Fail(err)
		return nil, fail(req, tracer, name, StageRead, err)
	}
	srcID, err := fs.Load(req.SourcePath)
	if err != nil {
		err = fmt.Errorf("annotated source: %w", err)
		span.Fail(err)
		return nil, fail(req, tracer, name, StageRead, err)
	}
	res.OutputFile, res.SourceFile = outID, srcID
	output := res.Output().Lines()
	timer.End(idx, fmt.Sprintf("%d output lines", len(output)))
	span.WithExtra("output_lines", strconv.Itoa(len(output))).End("")

	// parse
	emit(req.Progress, Event{Case: name, Stage: StageParse, Status: StatusWorking})
	span = trace.Begin(tracer, trace.ScopePhase, "parse", runSpan.ID())
	idx = timer.Begin("parse")
	set, hit, err := parseSource(req.Cache, res.Source(), markers, func(err error) {
		reportCacheError(res, req.Cache, err)
		trace.Point(tracer, trace.ScopeError, "cache", err.Error(), span.ID())
	})
	if err != nil {
		reportParseError(res, err)
		timer.End(idx, "failed")
		span.Fail(err)
		res.Timing = timer.Report()
		return res, fail(req, tracer, name, StageParse, err)
	}
	res.Expected, res.CacheHit = set, hit
	note := fmt.Sprintf("%d fragments", set.Len())
	if hit {
		note += " (cached)"
	}
	timer.End(idx, note)
	span.WithExtra("fragments", strconv.Itoa(set.Len())).End("")

	// locate
	emit(req.Progress, Event{Case: name, Stage: StageLocate, Status: StatusWorking})
	span = trace.Begin(tracer, trace.ScopePhase, "locate", runSpan.ID())
	idx = timer.Begin("locate")
	res.Matches = locate.Locate(output, set)
	for _, m := range res.Matches {
		trace.Point(tracer, trace.ScopeFragment, m.Fragment.String(),
			fmt.Sprintf("expected=%d found=%d", m.Expected, m.Found), span.ID())
	}
	reportMatches(res)
	sum := res.Summary()
	timer.End(idx, fmt.Sprintf("%d/%d ok", sum.Found, sum.Fragments))
	span.WithExtra("failed", strconv.Itoa(sum.Failed())).End("")

	res.Timing = timer.Report()
	emit(req.Progress, Event{
		Case:    name,
		Stage:   StageLocate,
		Status:  StatusDone,
		Failed:  sum.Failed() > 0,
		Elapsed: time.Duration(res.Timing.TotalMS * float64(time.Millisecond)),
	})
	return res, nil
}

func fail(req *Request, tracer trace.Tracer, name string, stage Stage, err error) error {
	trace.Point(tracer, trace.ScopeError, name, err.Error(), 0)
	emit(req.Progress, Event{Case: name, Stage: stage, Status: StatusError, Err: err})
	return err
}

// Extract loads one annotated file and returns its ExpectedSet without
// looking at any tool output.
func Extract(ctx context.Context, req *Request) (*annot.ExpectedSet, *source.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	markers := req.Markers
	if markers.Primary == "" || markers.Next == "" {
		markers = annot.DefaultMarkers()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "extract", trace.CurrentSpan(ctx))
	defer span.End("")

	fs := source.NewFileSet()
	fs.SetBaseDir(req.BaseDir)
	fs.SetNormalization(req.Normalize)
	id, err := fs.Load(req.SourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("annotated source: %w", err)
	}
	f := fs.Get(id)
	set, hit, err := parseSource(req.Cache, f, markers, nil)
	if err != nil {
		return nil, f, err
	}
	span.WithExtra("cached", strconv.FormatBool(hit))
	return set, f, nil
}

// parseSource consults the cache before parsing. Parse failures are not
// cached; a failed cache write is passed to warn and the parsed set is still
// returned.
func parseSource(c *cache.Cache, f *source.File, m annot.Markers, warn func(error)) (*annot.ExpectedSet, bool, error) {
	key := cache.NewKey(f.Hash, m)
	if set, ok := c.Get(key); ok {
		return set, true, nil
	}
	set, err := annot.ParseFile(f, m)
	if err != nil {
		return nil, false, err
	}
	if err := c.Put(key, set); err != nil && warn != nil {
		warn(err)
	}
	return set, false, nil
}
