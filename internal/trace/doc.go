// Package trace is the logging/tracing subsystem of fixcheck.
//
// Tracing follows a run through its phases (read, parse, locate, report) and,
// in batch mode, through every case. It is off by default.
//
// # Usage
//
//	fixcheck --trace=- --trace-level=phase out.txt test.cpp
//	fixcheck run --trace=trace.ndjson --trace-level=debug
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only fatal errors
//   - LevelPhase: run and phase boundaries
//   - LevelDetail: per-case events in batch mode
//   - LevelDebug: everything, including one event per fragment
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", parentID)
//	defer span.End("")
package trace
