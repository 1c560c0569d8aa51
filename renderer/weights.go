package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/smicfund/smic"
)

// WeightsMarkdown renders the sector weights of one valuation day,
// equity sectors first, then Fixed Income and Cash.
func WeightsMarkdown(v *smic.DailyValuation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Sector Allocation on %s", v.Date))
	doc.PlainText(fmt.Sprintf("Total Value: %s", money(v.Total)))

	table := md.TableSet{
		Header: []string{"Sector", "ETF", "Stocks", "Weight"},
		Rows:   [][]string{},
	}
	for _, s := range smic.EquitySectors() {
		sv := v.PerSector[s]
		table.Rows = append(table.Rows, []string{
			s.Display(), money(sv.ETF), money(sv.Stock), pct(v.SectorWeight(s)),
		})
	}
	table.Rows = append(table.Rows,
		[]string{smic.FixedIncome.Display(), "", money(v.FixedIncome), pct(v.SectorWeight(smic.FixedIncome))},
		[]string{smic.Cash.Display(), "", money(v.Cash), pct(v.SectorWeight(smic.Cash))},
	)
	doc.Table(table)

	return doc.String()
}
