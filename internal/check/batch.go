package check

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fixcheck/internal/trace"
)

// Case is one output/source pair of a batch run.
type Case struct {
	Name       string
	OutputPath string
	SourcePath string
}

// CaseResult pairs a case with its outcome. Result may be non-nil even when
// Err is set (malformed annotations).
type CaseResult struct {
	Case   Case
	Result *Result
	Err    error
}

// Failed reports whether the case errored or had mismatching fragments.
func (r CaseResult) Failed() bool {
	return r.Err != nil || (r.Result != nil && r.Result.Failed())
}

// RunBatch checks every case with at most jobs cases in flight (jobs <= 0
// uses GOMAXPROCS). base supplies the shared settings; its paths and Name
// are replaced per case. A fatal error in one case is recorded in that
// case's result and does not stop the others. Results keep case order.
func RunBatch(ctx context.Context, cases []Case, base Request, jobs int) []CaseResult {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]CaseResult, len(cases))

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRun, "batch", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	for _, c := range cases {
		emit(base.Progress, Event{Case: caseName(c), Stage: StageRead, Status: StatusQueued})
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, c := range cases {
		g.Go(func() error {
			req := base
			req.Name = caseName(c)
			req.OutputPath = c.OutputPath
			req.SourcePath = c.SourcePath
			res, err := Run(ctx, &req)
			results[i] = CaseResult{Case: c, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results
	return results
}

func caseName(c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return c.SourcePath
}
