package smic

import (
	"iter"
	"maps"
	"slices"
)

// Quotes is the price-source collaborator: a date-indexed adjusted close
// per ticker. A series may be partial; absence is reported, not thrown.
type Quotes interface {
	// PriceOn returns the price for the exact date, or false.
	PriceOn(ticker string, on Date) (float64, bool)
	// PriceRange returns the ordered (date, price) series inside r.
	// The result is never nil; an unknown ticker yields an empty history.
	PriceRange(ticker string, r Range) *History[float64]
}

// PriceLookup is a pluggable strategy resolving a price for (ticker, date).
type PriceLookup func(ticker string, on Date) (float64, bool)

// allTime covers any plausible market date.
var allTime = Range{From: NewDate(1900, 1, 1), To: NewDate(9999, 12, 31)}

// AsOf returns the carry-forward lookup strategy over q: the price on the
// requested date, or the most recent one before it. Missing market data is
// common around entry dates and non-trading days; forward fill is the
// explicit policy, implemented once so it can be swapped or tested alone.
func AsOf(q Quotes) PriceLookup {
	return func(ticker string, on Date) (float64, bool) {
		if p, ok := q.PriceOn(ticker, on); ok {
			return p, true
		}
		hist := q.PriceRange(ticker, Range{From: allTime.From, To: on})
		_, p := hist.Latest()
		if hist.Len() == 0 {
			return 0, false
		}
		return p, true
	}
}

// PriceTable is an in-memory Quotes implementation, the collection point
// for fetched (or test) price snapshots. It is not safe for concurrent
// mutation; fetchers must fully collect before valuation starts.
type PriceTable struct {
	series map[string]*History[float64]
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string]*History[float64])}
}

// Add records the close price of ticker on a date, overwriting any
// previous value for that day.
func (t *PriceTable) Add(ticker string, on Date, price float64) {
	h, ok := t.series[ticker]
	if !ok {
		h = &History[float64]{}
		t.series[ticker] = h
	}
	h.Append(on, price)
}

// Merge copies a whole series into the table.
func (t *PriceTable) Merge(ticker string, h *History[float64]) {
	for on, p := range h.Values() {
		t.Add(ticker, on, p)
	}
}

// Has reports whether the table holds any price for ticker.
func (t *PriceTable) Has(ticker string) bool {
	h, ok := t.series[ticker]
	return ok && h.Len() > 0
}

// Tickers returns the sorted tickers present in the table.
func (t *PriceTable) Tickers() []string {
	tickers := slices.Collect(maps.Keys(t.series))
	slices.Sort(tickers)
	return tickers
}

// PriceOn implements Quotes.
func (t *PriceTable) PriceOn(ticker string, on Date) (float64, bool) {
	h, ok := t.series[ticker]
	if !ok {
		return 0, false
	}
	return h.Get(on)
}

// PriceRange implements Quotes.
func (t *PriceTable) PriceRange(ticker string, r Range) *History[float64] {
	out := &History[float64]{}
	h, ok := t.series[ticker]
	if !ok {
		return out
	}
	for on, p := range h.Values() {
		if r.Contains(on) {
			out.Append(on, p)
		}
	}
	return out
}

// All yields every (ticker, date, price) triple, tickers sorted, dates
// chronological. Used for persistence.
func (t *PriceTable) All() iter.Seq2[string, *History[float64]] {
	return func(yield func(string, *History[float64]) bool) {
		for _, ticker := range t.Tickers() {
			if !yield(ticker, t.series[ticker]) {
				return
			}
		}
	}
}

var _ Quotes = (*PriceTable)(nil)
