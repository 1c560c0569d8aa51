package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/smic"
)

// SummaryMarkdown renders the performance report to a markdown string.
func SummaryMarkdown(s *smic.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	m := s.Metrics
	doc.H1("Portfolio Performance Report")
	doc.PlainText(fmt.Sprintf("%s to %s", m.Start, m.End))

	table := md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   [][]string{},
	}
	for _, row := range s.Rows() {
		table.Rows = append(table.Rows, []string{row.Key, row.Value})
	}
	doc.Table(table)

	if n := len(s.IncompleteDays); n > 0 {
		doc.H2("Data Quality")
		doc.PlainText(fmt.Sprintf("%d day(s) had missing prices for held assets; affected assets contributed zero on those days.", n))
	}

	return doc.String()
}
