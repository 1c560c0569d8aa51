package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/smic"
)

// DriftMarkdown renders the per-sector ETF-vs-stock weight drift table.
func DriftMarkdown(title string, rows []smic.SectorDrift) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)

	table := md.TableSet{
		Header: []string{"Sector", "ETF Start", "ETF End", "ETF Δ", "Stocks Start", "Stocks End", "Stocks Δ", "Total Δ"},
		Rows:   [][]string{},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Sector.Display(),
			pct(r.ETFStart), pct(r.ETFEnd), signed(r.ETFChange),
			pct(r.StockStart), pct(r.StockEnd), signed(r.StockChange),
			signed(r.TotalChange),
		})
	}
	doc.Table(table)

	return doc.String()
}
