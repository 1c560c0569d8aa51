package smic

import (
	"math"
)

// daysPerYear converts calendar day spans to years for annualization.
const daysPerYear = 365.25

// Metrics derives performance and attribution figures from a valuation
// series. Benchmark-relative figures live in a separate Benchmark field
// because their absence is fatal only to themselves.
type Metrics struct {
	Start, End Date
	Days       int
	Years      float64

	Initial, Final Money
	Change         Money
	TotalReturn    Percent
	CAGR           Percent

	Peak, Trough         Money
	PeakDate, TroughDate Date
	MaxDrawdown          Percent

	// CumulativeReturns and Drawdowns are percent series over the calendar.
	CumulativeReturns *History[float64]
	Drawdowns         *History[float64]

	Benchmark *BenchmarkReport
}

// BenchmarkReport is the benchmark comparison, dollar-rebased so that its
// series starts at the portfolio's inception value.
type BenchmarkReport struct {
	Ticker         string
	Initial, Final Money
	Change         Money
	TotalReturn    Percent
	CAGR           Percent
	Outperformance Percent // portfolio CAGR minus benchmark CAGR

	// Series is the benchmark-normalized dollar value per trading day.
	Series *History[float64]
}

// Derive computes portfolio-only metrics from the valuation series.
// It fails with *InsufficientHistoryError when fewer than two trading
// days are available, since annualized figures would be meaningless.
func Derive(series []DailyValuation) (*Metrics, error) {
	if len(series) < 2 {
		return nil, &InsufficientHistoryError{Points: len(series)}
	}

	first, last := series[0], series[len(series)-1]
	m := &Metrics{
		Start:   first.Date,
		End:     last.Date,
		Initial: first.Total,
		Final:   last.Total,
		Change:  last.Total.Sub(first.Total),

		CumulativeReturns: &History[float64]{},
		Drawdowns:         &History[float64]{},
	}
	m.Days = last.Date.Sub(first.Date)
	m.Years = float64(m.Days) / daysPerYear
	if m.Years <= 0 {
		return nil, &InsufficientHistoryError{Points: len(series)}
	}

	initial := first.Total.AsFloat()
	final := last.Total.AsFloat()
	m.TotalReturn = Percent(100 * (final/initial - 1))
	m.CAGR = Percent(100 * (math.Pow(final/initial, 1/m.Years) - 1))

	// The running maximum never resets: drawdown is measured against the
	// all-time high up to and including each day.
	peak := series[0]
	trough := series[0]
	maxDD := 0.0
	for _, v := range series {
		total := v.Total.AsFloat()
		m.CumulativeReturns.Append(v.Date, 100*(total/initial-1))

		if v.Total.GreaterThan(peak.Total) {
			peak = v
		}
		if v.Total.LessThan(trough.Total) {
			trough = v
		}
		dd := 100 * (total/peak.Total.AsFloat() - 1)
		m.Drawdowns.Append(v.Date, dd)
		if dd < maxDD {
			maxDD = dd
		}
	}
	m.Peak, m.PeakDate = peak.Total, peak.Date
	m.Trough, m.TroughDate = trough.Total, trough.Date
	m.MaxDrawdown = Percent(maxDD)

	return m, nil
}

// WithBenchmark adds the benchmark-normalized comparison to m. The
// benchmark series must cover [Start, End]; otherwise it fails with
// *MissingBenchmarkDataError and m's portfolio-only figures stay valid.
func (m *Metrics) WithBenchmark(quotes Quotes, ticker string) error {
	window := Range{From: m.Start, To: m.End}
	hist := quotes.PriceRange(ticker, allTime)

	firstBench, _ := hist.First()
	lastBench, _ := hist.Latest()
	if hist.Len() == 0 || firstBench.After(m.Start) || lastBench.Before(m.End) {
		return &MissingBenchmarkDataError{Ticker: ticker, Window: window}
	}

	base, ok := hist.ValueAsOf(m.Start)
	if !ok || base == 0 {
		return &MissingBenchmarkDataError{Ticker: ticker, Window: window}
	}

	b := &BenchmarkReport{Ticker: ticker, Series: &History[float64]{}}
	initial := m.Initial.AsFloat()
	// rescale so that benchmark(inception) equals the portfolio's
	// inception value, making the two series dollar-comparable
	for on := range m.CumulativeReturns.Values() {
		price, ok := hist.ValueAsOf(on)
		if !ok {
			return &MissingBenchmarkDataError{Ticker: ticker, Window: window}
		}
		b.Series.Append(on, price/base*initial)
	}

	_, firstVal := b.Series.First()
	_, lastVal := b.Series.Latest()
	b.Initial = M(firstVal, USD)
	b.Final = M(lastVal, USD)
	b.Change = b.Final.Sub(b.Initial)
	b.TotalReturn = Percent(100 * (lastVal/firstVal - 1))
	b.CAGR = Percent(100 * (math.Pow(lastVal/firstVal, 1/m.Years) - 1))
	b.Outperformance = m.CAGR - b.CAGR

	m.Benchmark = b
	return nil
}

// YTD restricts a valuation series to the current calendar year: the
// sub-series from the first trading day of the final year. Metrics
// derived from it are implicitly re-based to that day.
func YTD(series []DailyValuation) []DailyValuation {
	if len(series) == 0 {
		return nil
	}
	start := series[len(series)-1].Date.StartOfYear()
	for i, v := range series {
		if !v.Date.Before(start) {
			return series[i:]
		}
	}
	return nil
}

// SectorDrift summarizes how one sector's ETF and stock weights moved
// between the first and last day of a series.
type SectorDrift struct {
	Sector Sector

	ETFStart, ETFEnd, ETFChange       Percent
	StockStart, StockEnd, StockChange Percent
	TotalStart, TotalEnd, TotalChange Percent
}

// DriftTable computes the per-sector ETF-vs-stock weight drift over the
// series, one row per equity sector. Apply it to YTD(series) for the
// year-to-date table.
func DriftTable(series []DailyValuation) []SectorDrift {
	if len(series) == 0 {
		return nil
	}
	first, last := series[0], series[len(series)-1]
	rows := make([]SectorDrift, 0, len(EquitySectors()))
	for _, s := range EquitySectors() {
		etf0, stock0 := first.KindWeights(s)
		etf1, stock1 := last.KindWeights(s)
		rows = append(rows, SectorDrift{
			Sector:      s,
			ETFStart:    etf0,
			ETFEnd:      etf1,
			ETFChange:   etf1 - etf0,
			StockStart:  stock0,
			StockEnd:    stock1,
			StockChange: stock1 - stock0,
			TotalStart:  etf0 + stock0,
			TotalEnd:    etf1 + stock1,
			TotalChange: (etf1 + stock1) - (etf0 + stock0),
		})
	}
	return rows
}

// WeightSeries returns one percent history per sector (equity sectors
// plus Fixed Income and Cash) over the whole series.
func WeightSeries(series []DailyValuation) map[Sector]*History[float64] {
	out := make(map[Sector]*History[float64], len(AllSectors()))
	for _, s := range AllSectors() {
		out[s] = &History[float64]{}
	}
	for _, v := range series {
		for _, s := range AllSectors() {
			out[s].Append(v.Date, float64(v.SectorWeight(s)))
		}
	}
	return out
}
