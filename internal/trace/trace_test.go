package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "PHASE"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Fatalf("round trip %q -> %q", s, lvl.String())
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeError, false},
		{LevelError, ScopeError, true},
		{LevelError, ScopeRun, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeCase, false},
		{LevelDetail, ScopeCase, true},
		{LevelDetail, ScopeFragment, false},
		{LevelDebug, ScopeFragment, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	run := Begin(tr, ScopeRun, "check", 0)
	phase := Begin(tr, ScopePhase, "parse", run.ID())
	phase.WithExtra("fragments", "3").End("")
	Begin(tr, ScopeFragment, "hidden", phase.ID()).End("")
	run.End("ok")

	out := buf.String()
	for _, want := range []string{"\u2192 check", "  \u2192 parse", "\u2190 parse {fragments=3}", "\u2190 check (ok)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("fragment scope must be filtered at phase level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeFragment, "locate", "found=2", 0)

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if ev["name"] != "locate" || ev["kind"] != "point" || ev["detail"] != "found=2" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx = WithTracer(ctx, tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(tr, ScopeRun, "run", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", CurrentSpan(ctx), span.ID())
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestSpanFailAndFilteredPoints(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	span := Begin(tr, ScopePhase, "read", 0)
	Point(tr, ScopeFragment, "hidden", "", span.ID())
	span.Fail(errors.New("no such file"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want begin+end:\n%s", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("invalid ndjson %q: %v", lines[1], err)
	}
	if end["kind"] != "end" || end["detail"] != "no such file" {
		t.Fatalf("unexpected end event %v", end)
	}
	if extra, _ := end["extra"].(map[string]any); extra["error"] != "true" {
		t.Fatalf("end event extra = %v", end["extra"])
	}
}

func TestInertSpan(t *testing.T) {
	span := Begin(Nop, ScopeRun, "run", 0)
	if span.ID() != 0 || span.End("") != 0 || span.Fail(nil) != 0 {
		t.Fatal("span of a disabled tracer must be inert")
	}
}
