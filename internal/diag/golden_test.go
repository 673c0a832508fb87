package diag

import (
	"testing"

	"fixcheck/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	test := fs.Add("/workspace/checkers/use-named-cast.cpp", []byte("a\n// CHECK-FIXES: b\n"), 0)

	diags := []Diagnostic{
		NewError(FixWrongCount, source.Span{File: test, Start: 2, End: 20}, "Did not find [\"b\"]\nthe correct number of times").
			WithNote(source.Span{File: test, Start: 0, End: 1}, "block here"),
		New(SevInfo, FixFound, source.Span{File: test, Start: 0, End: 1}, "Found fix [\"a\"] at 3"),
	}

	expected := "info FIX1001 checkers/use-named-cast.cpp:1:1 Found fix [\"a\"] at 3\n" +
		"note FIX1003 checkers/use-named-cast.cpp:1:1 block here\n" +
		"error FIX1003 checkers/use-named-cast.cpp:2:1 Did not find [\"b\"] the correct number of times"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{NewError(FixNotFound, source.Span{File: 3}, "nowhere")}
	if got := FormatShortDiagnostics(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
