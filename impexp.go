package smic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the legacy transactions.csv schema this fund has always
// used: one row per investment event.
var csvHeader = []string{"sector", "ticker", "invest_date", "shares", "price_per_share", "amount_invested"}

// ImportCSV reads the legacy transactions.csv format and converts it into
// ledger transactions. Cash rows become deposits. A row buying an
// individual stock is, by the fund's charter, always funded by selling the
// same dollar amount of its sector's ETF, so such rows expand into the
// two legs of a swap.
func ImportCSV(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("transaction csv is empty")
	}

	col := make(map[string]int)
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"sector", "ticker", "invest_date", "amount_invested"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	number := func(row []string, name string) (float64, error) {
		s := field(row, name)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	ledger := NewLedger()
	for n, row := range records[1:] {
		line := n + 2 // 1-based, after the header

		sector, err := ParseSector(field(row, "sector"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		on, err := ParseDate(field(row, "invest_date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ticker := field(row, "ticker")
		shares, err := number(row, "shares")
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid shares: %w", line, err)
		}
		price, err := number(row, "price_per_share")
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		amount, err := number(row, "amount_invested")
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount: %w", line, err)
		}

		switch KindOf(sector, ticker) {
		case KindCash:
			ledger.Append(NewDeposit(on, M(amount, USD)))
		case KindStock:
			sell, buy, err := NewSwap(on, sector, ticker, M(amount, USD))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			buy.Shares = Q(shares)
			buy.Price = M(price, USD)
			ledger.Append(sell, buy)
		default:
			ledger.Append(NewBuy(on, sector, ticker, Q(shares), M(price, USD), M(amount, USD)))
		}
	}
	return ledger, nil
}

// ExportHistoryCSV writes the daily valuation series: date, total, cash,
// fixed income, then one column per equity sector's total value.
func ExportHistoryCSV(w io.Writer, series []DailyValuation) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "total", "cash", "fixed_income"}
	for _, s := range EquitySectors() {
		header = append(header, string(s))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range series {
		row := []string{
			v.Date.String(),
			formatFloat(v.Total.AsFloat()),
			formatFloat(v.Cash.AsFloat()),
			formatFloat(v.FixedIncome.AsFloat()),
		}
		for _, s := range EquitySectors() {
			row = append(row, formatFloat(v.PerSector[s].Total().AsFloat()))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportWeightsCSV writes per-sector weights in percent, one row per day.
func ExportWeightsCSV(w io.Writer, series []DailyValuation) error {
	cw := csv.NewWriter(w)
	header := []string{"date"}
	for _, s := range AllSectors() {
		header = append(header, string(s))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range series {
		row := []string{v.Date.String()}
		for _, s := range AllSectors() {
			row = append(row, formatFloat(float64(v.SectorWeight(s))))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportDriftCSV writes the per-sector ETF-vs-stock drift table.
func ExportDriftCSV(w io.Writer, rows []SectorDrift) error {
	cw := csv.NewWriter(w)
	header := []string{
		"sector",
		"etf_weight_start", "etf_weight_end", "etf_change",
		"stocks_weight_start", "stocks_weight_end", "stocks_change",
		"total_start", "total_end", "total_change",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			string(r.Sector),
			formatFloat(float64(r.ETFStart)), formatFloat(float64(r.ETFEnd)), formatFloat(float64(r.ETFChange)),
			formatFloat(float64(r.StockStart)), formatFloat(float64(r.StockEnd)), formatFloat(float64(r.StockChange)),
			formatFloat(float64(r.TotalStart)), formatFloat(float64(r.TotalEnd)), formatFloat(float64(r.TotalChange)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSummaryCSV writes the key-value report as two columns.
func ExportSummaryCSV(w io.Writer, s *Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, row := range s.Rows() {
		if err := cw.Write([]string{row.Key, row.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
