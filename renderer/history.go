package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/smic"
)

// HistoryMarkdown renders the daily valuation series, with the
// benchmark-normalized overlay when metrics carry one.
func HistoryMarkdown(series []smic.DailyValuation, m *smic.Metrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Value History")

	withBench := m != nil && m.Benchmark != nil
	header := []string{"Date", "Total", "Cash", "Return"}
	if withBench {
		header = append(header, "Benchmark")
	}

	table := md.TableSet{Header: header, Rows: [][]string{}}
	for _, v := range series {
		row := []string{v.Date.String(), money(v.Total), money(v.Cash), ""}
		if m != nil {
			if r, ok := m.CumulativeReturns.Get(v.Date); ok {
				row[3] = smic.Percent(r).SignedString()
			}
		}
		if withBench {
			if b, ok := m.Benchmark.Series.Get(v.Date); ok {
				row = append(row, f2(b))
			} else {
				row = append(row, "")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}
