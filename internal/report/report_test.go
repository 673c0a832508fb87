package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fixcheck/internal/annot"
	"fixcheck/internal/check"
)

func runCheck(t *testing.T, output, annotated string) *check.Result {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	src := filepath.Join(dir, "src.cpp")
	if err := os.WriteFile(out, []byte(output), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte(annotated), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := check.Run(context.Background(), &check.Request{OutputPath: out, SourcePath: src, BaseDir: dir})
	if err != nil {
		t.Fatalf("check.Run: %v", err)
	}
	return res
}

const (
	sampleOutput = "a\nxfoob\nc\nbar();\n"
	sampleSource = "// CHECK-FIXES: foo\n\n// CHECK-FIXES: baz\nx\n// CHECK-FIXES: bar();\n\n// CHECK-FIXES: bar();\n\n// CHECK-FIXES: bar();\n// CHECK-FIXES-NEXT: qux\n"
)

func TestText(t *testing.T) {
	res := runCheck(t, sampleOutput, sampleSource)

	tests := []struct {
		name      string
		showFound bool
		want      string
	}{
		{
			name: "mismatches only",
			want: "Did not find [\"baz\"]\n" +
				"Did not find [\"bar();\"] the correct number of times count=2 found=1 too_many=False\n" +
				"Did not find [\"bar();\", \"qux\"]\n",
		},
		{
			name:      "with found",
			showFound: true,
			want: "Found fix [\"foo\"] at 1\n" +
				"Did not find [\"baz\"]\n" +
				"Found fix [\"bar();\"] at 3\n" +
				"Did not find [\"bar();\"] the correct number of times count=2 found=1 too_many=False\n" +
				"Did not find [\"bar();\", \"qux\"]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Text(&buf, res, tt.showFound); err != nil {
				t.Fatalf("Text: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextAllMatchedIsSilent(t *testing.T) {
	res := runCheck(t, "foo(a, b);\n", "// CHECK-FIXES: foo(a, b);\n")
	var buf bytes.Buffer
	if err := Render(&buf, res, Options{Format: FormatText}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestShort(t *testing.T) {
	res := runCheck(t, sampleOutput, sampleSource)
	var buf bytes.Buffer
	if err := Short(&buf, res, false); err != nil {
		t.Fatal(err)
	}
	want := "error FIX1002 src.cpp:3:1 Did not find [\"baz\"]\n" +
		"error FIX1003 src.cpp:5:1 Did not find [\"bar();\"] the correct number of times count=2 found=1 too_many=False\n" +
		"error FIX1002 src.cpp:9:1 Did not find [\"bar();\", \"qux\"]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("short output mismatch (-want +got):\n%s", diff)
	}
}

func TestPretty(t *testing.T) {
	res := runCheck(t, sampleOutput, sampleSource)
	var buf bytes.Buffer
	if err := Pretty(&buf, res, Options{Format: FormatPretty, Width: 4}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"src.cpp:3: error FIX1002: Did not find [\"baz\"]\n   | baz\n",
		"src.cpp:5: error FIX1003:",
		"  note: src.cpp:7: also expected here\n",
		"  note: out.txt:4: found here\n",
		"   | bar…\n",
		"FAILED: 4 fragments, 1 found, 2 not found, 1 wrong count\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("color disabled but escape codes present:\n%s", got)
	}
}

func TestPrettyColor(t *testing.T) {
	res := runCheck(t, "x\n", "// CHECK-FIXES: y\n")
	var buf bytes.Buffer
	if err := Pretty(&buf, res, Options{Format: FormatPretty, Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected escape codes:\n%q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	res := runCheck(t, sampleOutput, sampleSource)
	var buf bytes.Buffer
	if err := JSON(&buf, res, Options{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Source != "src.cpp" || doc.Output != "out.txt" {
		t.Errorf("paths = %q, %q", doc.Source, doc.Output)
	}
	want := SummaryJSON{Fragments: 4, Found: 1, NotFound: 2, WrongCount: 1}
	if diff := cmp.Diff(want, doc.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	first := doc.Fragments[0]
	if first.Status != "found" || first.Message != "" || !cmp.Equal(first.Offsets, []int{1}) {
		t.Errorf("unexpected first fragment %+v", first)
	}
	bar := doc.Fragments[2]
	if bar.Status != "wrong_count" || bar.TooMany || !cmp.Equal(bar.SourceLines, []int{5, 7}) {
		t.Errorf("unexpected bar fragment %+v", bar)
	}
	if doc.Timing != nil {
		t.Error("timing should be omitted unless requested")
	}
}

func TestExpected(t *testing.T) {
	set, err := annot.Parse([]string{
		"// CHECK-FIXES: foo(a, b);",
		"",
		"// CHECK-FIXES: foo(a, b);",
		"// CHECK-FIXES: nope",
	}, annot.DefaultMarkers())
	if !errors.Is(err, annot.ErrNestedPrimary) || set != nil {
		t.Fatalf("expected nested primary error, got %v", err)
	}

	set, err = annot.Parse([]string{
		"// CHECK-FIXES: foo(a, b);",
		"",
		"// CHECK-FIXES: foo(a, b);",
	}, annot.DefaultMarkers())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Expected(&buf, "a.cpp", set, FormatText); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "[\"foo(a, b);\"] count=2 lines=1,3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	if err := Expected(&buf, "a.cpp", set, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var doc ExpectedJSON
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Total != 2 || len(doc.Fragments) != 1 || doc.Fragments[0].Count != 2 {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "pretty", "json", "short", ""} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestBatch(t *testing.T) {
	ok := runCheck(t, "x\n", "// CHECK-FIXES: x\n")
	bad := runCheck(t, "x\n", "// CHECK-FIXES: y\n")
	results := []check.CaseResult{
		{Case: check.Case{Name: "ok"}, Result: ok},
		{Case: check.Case{Name: "bad"}, Result: bad},
		{Case: check.Case{Name: "broken"}, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	if err := Batch(&buf, results, Options{Format: FormatText}); err != nil {
		t.Fatal(err)
	}
	want := "== ok\n== bad\nDid not find [\"y\"]\n== broken\nerror: boom\nFAILED: 1 passed, 2 failed\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("batch output mismatch (-want +got):\n%s", diff)
	}

	doc := BuildBatch(results, Options{Format: FormatJSON})
	if doc.Passed != 1 || doc.Failed != 2 || doc.Cases[2].Error != "boom" || doc.Cases[2].Document != nil {
		t.Errorf("unexpected batch document %+v", doc)
	}
}
