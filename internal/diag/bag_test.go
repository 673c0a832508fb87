package diag

import (
	"testing"

	"fixcheck/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	ReportInfo(r, FixFound, source.Span{}, "found").Emit()
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("info must not count as error or warning")
	}

	b := ReportError(r, FixNotFound, source.Span{Start: 4}, "missing")
	b.Emit()
	b.Emit() // second Emit is a no-op
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}

	if bag.Add(NewError(FixWrongCount, source.Span{}, "over")) {
		t.Fatal("Add beyond limit must report false")
	}
	if got := bag.CountBySeverity(SevError); got != 1 {
		t.Fatalf("CountBySeverity(SevError) = %d, want 1", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(FixNotFound, source.Span{File: 0, Start: 10, End: 12}, "b"))
	bag.Add(New(SevInfo, FixFound, source.Span{File: 0, Start: 2, End: 3}, "a"))
	bag.Add(NewError(FixNotFound, source.Span{File: 0, Start: 10, End: 12}, "b"))
	bag.Add(NewError(FixWrongCount, source.Span{File: 0, Start: 2, End: 3}, "c"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", bag.Len())
	}

	bag.Sort()
	items := bag.Items()
	want := []Code{FixWrongCount, FixFound, FixNotFound}
	for i, code := range want {
		if items[i].Code != code {
			t.Fatalf("item %d: got %s, want %s", i, items[i].Code.ID(), code.ID())
		}
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		FixNotFound:           "FIX1002",
		AnnOrphanContinuation: "ANN2002",
		IOCacheError:          "IO4002",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(9999).Title())
	}
}
