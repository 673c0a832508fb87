package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	timer := NewTimer()
	timer.now = func() time.Time { return clock }

	read := timer.Begin("read")
	clock = clock.Add(2 * time.Millisecond)
	timer.End(read, "2 files")

	parse := timer.Begin("parse")
	clock = clock.Add(500 * time.Microsecond)
	timer.End(parse, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[1].DurationMS != 0.5 {
		t.Fatalf("unexpected durations %+v", report.Phases)
	}
	if report.TotalMS != 2.5 {
		t.Fatalf("TotalMS = %v, want 2.5", report.TotalMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "read", "// 2 files", "total", "2.50 ms"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestReportAppend(t *testing.T) {
	a := Report{TotalMS: 1, Phases: []PhaseReport{{Name: "read", DurationMS: 1}}}
	b := Report{TotalMS: 0.5, Phases: []PhaseReport{{Name: "report", DurationMS: 0.5}}}
	got := a.Append(b)
	if got.TotalMS != 1.5 || len(got.Phases) != 2 || got.Phases[1].Name != "report" {
		t.Fatalf("unexpected report %+v", got)
	}
	if len(a.Phases) != 1 {
		t.Fatal("Append modified its receiver")
	}
}
