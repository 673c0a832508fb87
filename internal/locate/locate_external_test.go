package locate_test

import (
	"strings"
	"testing"

	"fixcheck/internal/annot"
	"fixcheck/internal/locate"
	"fixcheck/internal/testkit"
)

func TestLocateHoldsInvariants(t *testing.T) {
	source := strings.Join([]string{
		"// CHECK-FIXES: Something s2 = std::move(s1);",
		"",
		"// CHECK-FIXES: Something s3 = std::move(s1);",
		"",
		"// CHECK-FIXES: T other = std::move(t);",
		"// CHECK-FIXES-NEXT: return other;",
		"",
		"// CHECK-FIXES: #include <utility>",
	}, "\n")
	output := []string{
		"#include <utility>",
		"void f() {",
		"  Something s2 = std::move(s1);",
		"  Something s2 = std::move(s1);",
		"  T other = std::move(t);",
		"  return other;",
		"}",
	}

	set, err := annot.Parse(strings.Split(source, "\n"), annot.DefaultMarkers())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	matches := locate.Locate(output, set)
	if err := testkit.CheckMatchInvariants(output, matches); err != nil {
		t.Fatal(err)
	}
	sum := locate.Summarize(matches)
	if sum.Found != 2 || sum.WrongCount != 1 || sum.NotFound != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
