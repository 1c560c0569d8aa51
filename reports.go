package smic

import "fmt"

// Summary is the textual performance report: key metrics as plain
// key-value pairs, in presentation order. Collaborators may render it as
// markdown, CSV or an in-memory table.
type Summary struct {
	Metrics *Metrics

	IncompleteDays []Date // days flagged incomplete during valuation
}

// NewSummary assembles the report from a derived Metrics and the
// valuation series it came from.
func NewSummary(m *Metrics, series []DailyValuation) *Summary {
	s := &Summary{Metrics: m}
	for _, v := range series {
		if v.Incomplete {
			s.IncompleteDays = append(s.IncompleteDays, v.Date)
		}
	}
	return s
}

// Row is one line of the report.
type Row struct{ Key, Value string }

// Rows returns the report lines in presentation order, mirroring the
// classic period/values/benchmark/annualized/statistics layout.
func (s *Summary) Rows() []Row {
	m := s.Metrics
	months := float64(m.Days) / 30.44

	rows := []Row{
		{"Start Date", m.Start.String()},
		{"End Date", m.End.String()},
		{"Duration", fmt.Sprintf("%d days (%.1f months / %.2f years)", m.Days, months, m.Years)},
		{"Initial Value", m.Initial.String()},
		{"Final Value", m.Final.String()},
		{"Absolute Change", m.Change.String()},
		{"Total Return", m.TotalReturn.String()},
	}
	if b := m.Benchmark; b != nil {
		rows = append(rows,
			Row{"Benchmark", b.Ticker},
			Row{"Benchmark Initial Value", b.Initial.String()},
			Row{"Benchmark Final Value", b.Final.String()},
			Row{"Benchmark Absolute Change", b.Change.String()},
			Row{"Benchmark Total Return", b.TotalReturn.String()},
		)
	}
	rows = append(rows, Row{"Portfolio CAGR", m.CAGR.String()})
	if b := m.Benchmark; b != nil {
		rows = append(rows,
			Row{"Benchmark CAGR", b.CAGR.String()},
			Row{"Outperformance", b.Outperformance.SignedString()},
		)
	}
	rows = append(rows,
		Row{"Peak Value", fmt.Sprintf("%s  (%s)", m.Peak, m.PeakDate)},
		Row{"Lowest Value", fmt.Sprintf("%s  (%s)", m.Trough, m.TroughDate)},
		Row{"Max Drawdown", m.MaxDrawdown.String()},
	)
	if n := len(s.IncompleteDays); n > 0 {
		rows = append(rows, Row{"Incomplete Days", fmt.Sprintf("%d (missing prices, values partial)", n)})
	}
	return rows
}
