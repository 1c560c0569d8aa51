package smic

import (
	"bytes"
	"strings"
	"testing"
)

const sampleCSV = `sector,ticker,invest_date,shares,price_per_share,amount_invested
Technology,VGT,2024-01-02,20,500,10000
Cash,CASH,2024-01-02,,,500
Fixed Income,FIXED,2024-01-02,,,1000
Technology,AAPL,2024-02-01,10,200,2000
`

func TestImportCSV(t *testing.T) {
	ledger, err := ImportCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	// the AAPL stock row expands into a swap pair
	if ledger.Len() != 5 {
		t.Fatalf("Len = %d, want 5", ledger.Len())
	}
	if err := ledger.Validate(); err != nil {
		t.Fatalf("imported ledger is invalid: %v", err)
	}

	var deposits, buys, sells int
	var swapSell *Sell
	var swapBuy *Buy
	for _, tx := range ledger.Transactions() {
		switch v := tx.(type) {
		case Deposit:
			deposits++
			approx(t, "deposit amount", v.Amount.AsFloat(), 500)
		case Sell:
			sells++
			swapSell = &v
		case Buy:
			buys++
			if v.SwapID != "" {
				swapBuy = &v
			}
		}
	}
	if deposits != 1 || buys != 3 || sells != 1 {
		t.Fatalf("got %d deposits, %d buys, %d sells", deposits, buys, sells)
	}

	if swapSell == nil || swapBuy == nil {
		t.Fatal("stock row did not expand into a swap pair")
	}
	if swapSell.Ticker != "VGT" || swapBuy.Ticker != "AAPL" {
		t.Errorf("swap legs = sell %s, buy %s", swapSell.Ticker, swapBuy.Ticker)
	}
	if swapSell.SwapID != swapBuy.SwapID {
		t.Error("swap legs do not share an id")
	}
	if !swapBuy.Shares.Equal(Q(10)) {
		t.Errorf("swap buy shares = %s, want 10", swapBuy.Shares)
	}
}

func TestImportCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "missing column", csv: "sector,ticker\nTechnology,VGT\n"},
		{name: "bad sector", csv: "sector,ticker,invest_date,shares,price_per_share,amount_invested\nCrypto,BTC,2024-01-02,,,100\n"},
		{name: "bad date", csv: "sector,ticker,invest_date,shares,price_per_share,amount_invested\nTechnology,VGT,yesterday,,,100\n"},
		{name: "bad amount", csv: "sector,ticker,invest_date,shares,price_per_share,amount_invested\nTechnology,VGT,2024-01-02,,,lots\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportCSV(strings.NewReader(tc.csv)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExportHistoryCSV(t *testing.T) {
	holdings, table := swapFixture(t)
	series, err := Valuate(holdings, table)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportHistoryCSV(&buf, series); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+len(series) {
		t.Fatalf("got %d lines, want %d", len(lines), 1+len(series))
	}
	if !strings.HasPrefix(lines[0], "date,total,cash,fixed_income,Technology") {
		t.Errorf("header = %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-01-02,10000.00,0.00,0.00,10000.00") {
		t.Errorf("first row = %s", lines[1])
	}
}

func TestExportDriftCSV(t *testing.T) {
	holdings, table := swapFixture(t)
	series, err := Valuate(holdings, table)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportDriftCSV(&buf, DriftTable(series)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+len(EquitySectors()) {
		t.Fatalf("got %d lines, want %d", len(lines), 1+len(EquitySectors()))
	}
	if !strings.HasPrefix(lines[0], "sector,etf_weight_start") {
		t.Errorf("header = %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Technology,100.00,") {
		t.Errorf("Technology row = %s", lines[1])
	}
}

func TestExportSummaryCSV(t *testing.T) {
	series := flatSeries(
		"2024-01-02", 100000.0,
		"2025-01-02", 110000.0,
	)
	m, err := Derive(series)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportSummaryCSV(&buf, NewSummary(m, series)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "metric,value\n") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "Start Date,2024-01-02") {
		t.Errorf("missing start date row: %s", out)
	}
	if !strings.Contains(out, "Total Return,10.00%") {
		t.Errorf("missing total return row: %s", out)
	}
}
