package smic

import (
	"slices"
	"testing"
)

func TestAsOfLookup(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", MustParse("2024-01-05"), 500)
	table.Add("VGT", MustParse("2024-01-10"), 510)

	lookup := AsOf(table)

	if p, ok := lookup("VGT", MustParse("2024-01-05")); !ok || p != 500 {
		t.Errorf("exact lookup = %v, %v", p, ok)
	}
	if p, ok := lookup("VGT", MustParse("2024-01-07")); !ok || p != 500 {
		t.Errorf("weekend lookup = %v, %v, want carried 500", p, ok)
	}
	if p, ok := lookup("VGT", MustParse("2024-02-01")); !ok || p != 510 {
		t.Errorf("after-last lookup = %v, %v, want 510", p, ok)
	}
	if _, ok := lookup("VGT", MustParse("2024-01-04")); ok {
		t.Error("expected no price before the first point")
	}
	if _, ok := lookup("AAPL", MustParse("2024-01-05")); ok {
		t.Error("expected no price for an unknown ticker")
	}
}

func TestPriceTableRange(t *testing.T) {
	table := NewPriceTable()
	for i, on := range []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
		table.Add("VGT", MustParse(on), 500+float64(i))
	}

	hist := table.PriceRange("VGT", NewRange(MustParse("2024-01-03"), MustParse("2024-01-04")))
	if hist.Len() != 2 {
		t.Fatalf("Len = %d, want 2", hist.Len())
	}
	if _, first := hist.First(); first != 501 {
		t.Errorf("first = %v, want 501", first)
	}

	empty := table.PriceRange("AAPL", allTime)
	if empty == nil || empty.Len() != 0 {
		t.Errorf("unknown ticker should yield an empty, non-nil history")
	}
}

func TestPriceTableMerge(t *testing.T) {
	src := &History[float64]{}
	src.Append(MustParse("2024-01-02"), 500)
	src.Append(MustParse("2024-01-03"), 505)

	table := NewPriceTable()
	table.Add("VGT", MustParse("2024-01-02"), 499) // overwritten by merge
	table.Merge("VGT", src)

	if p, _ := table.PriceOn("VGT", MustParse("2024-01-02")); p != 500 {
		t.Errorf("merge did not overwrite: %v", p)
	}
	if !table.Has("VGT") || table.Has("AAPL") {
		t.Error("Has is wrong")
	}
	if got := table.Tickers(); !slices.Equal(got, []string{"VGT"}) {
		t.Errorf("Tickers = %v", got)
	}
}
