package locate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fixcheck/internal/annot"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name    string
		output  []string
		frag    annot.Fragment
		want    int
		offsets []int
	}{
		{
			name:    "substring in middle line",
			output:  []string{"a", "xfoob", "c"},
			frag:    annot.NewFragment("foo"),
			want:    1,
			offsets: []int{1},
		},
		{
			name:   "fragment longer than output",
			output: []string{"foo", "bar"},
			frag:   annot.NewFragment("foo", "bar", "baz"),
			want:   0,
		},
		{
			name:    "overlapping matches all count",
			output:  []string{"aa", "aa", "aa"},
			frag:    annot.NewFragment("aa", "aa"),
			want:    2,
			offsets: []int{0, 1},
		},
		{
			name:   "truncated at end of output",
			output: []string{"x", "foo"},
			frag:   annot.NewFragment("foo", ""),
			want:   0,
		},
		{
			name:    "empty line matches everything",
			output:  []string{"a", "", "b"},
			frag:    annot.NewFragment(""),
			want:    3,
			offsets: []int{0, 1, 2},
		},
		{
			name:    "lines must be consecutive",
			output:  []string{"int a;", "// gap", "int b;", "int a;", "int b;"},
			frag:    annot.NewFragment("int a;", "int b;"),
			want:    1,
			offsets: []int{3},
		},
		{
			name:   "empty output",
			output: nil,
			frag:   annot.NewFragment("x"),
			want:   0,
		},
		{
			name:   "match is case sensitive",
			output: []string{"FOO"},
			frag:   annot.NewFragment("foo"),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.output, tt.frag); got != tt.want {
				t.Fatalf("Count = %d, want %d", got, tt.want)
			}
			if diff := cmp.Diff(tt.offsets, Offsets(tt.output, tt.frag)); diff != "" {
				t.Fatalf("Offsets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchesAtBounds(t *testing.T) {
	out := []string{"a", "b"}
	frag := annot.NewFragment("a")
	for _, i := range []int{-1, 2, 10} {
		if MatchesAt(out, i, frag) {
			t.Errorf("MatchesAt(%d) must be false", i)
		}
	}
	if MatchesAt(out, 0, annot.NewFragment()) {
		t.Error("empty fragment must never match")
	}
}

func TestLocateAndStatus(t *testing.T) {
	set, err := annot.FromEntries([]annot.Entry{
		{Fragment: annot.NewFragment("once"), Count: 1, SourceLines: []int{1}},
		{Fragment: annot.NewFragment("twice"), Count: 1, SourceLines: []int{2}},
		{Fragment: annot.NewFragment("half"), Count: 2, SourceLines: []int{3, 4}},
		{Fragment: annot.NewFragment("missing"), Count: 1, SourceLines: []int{5}},
	})
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	output := []string{"once", "twice", "twice", "half"}

	matches := Locate(output, set)
	type row struct {
		Found   int
		Status  Status
		TooMany bool
	}
	got := make([]row, 0, len(matches))
	for _, m := range matches {
		got = append(got, row{Found: m.Found, Status: m.Status(), TooMany: m.TooMany()})
	}
	want := []row{
		{Found: 1, Status: StatusFound},
		{Found: 2, Status: StatusWrongCount, TooMany: true},
		{Found: 1, Status: StatusWrongCount, TooMany: false},
		{Found: 0, Status: StatusNotFound},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Locate mismatch (-want +got):\n%s", diff)
	}

	sum := Summarize(matches)
	if sum.Fragments != 4 || sum.Found != 1 || sum.WrongCount != 2 || sum.NotFound != 1 || sum.Failed() != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestLocateSharesOffsetsAcrossFragments(t *testing.T) {
	set, err := annot.FromEntries([]annot.Entry{
		{Fragment: annot.NewFragment("foo"), Count: 1},
		{Fragment: annot.NewFragment("foo("), Count: 1},
	})
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	matches := Locate([]string{"foo(1);"}, set)
	for _, m := range matches {
		if !m.OK() || len(m.Offsets) != 1 || m.Offsets[0] != 0 {
			t.Fatalf("fragment %s: %+v", m.Fragment, m)
		}
	}
}
