package smic

import (
	"errors"
	"math"
	"testing"
)

// approx asserts a float is within a tiny tolerance of want.
func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestBuildHoldingsDerivesShares(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", MustParse("2024-01-02"), 500)

	l := NewLedger(NewBuy(MustParse("2024-01-02"), Technology, "VGT", Q(0), M(0, USD), M(10000, USD)))

	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	h := holdings[0]
	if h.Ticker != "VGT" || h.Sector != Technology || h.Kind != KindETF {
		t.Errorf("holding identity wrong: %+v", h)
	}
	if h.OpenDate != MustParse("2024-01-02") {
		t.Errorf("OpenDate = %v", h.OpenDate)
	}
	if !h.Quantity().Equal(Q(20)) {
		t.Errorf("Quantity = %s, want 20", h.Quantity())
	}
}

func TestBuildHoldingsForwardFillsEntryPrice(t *testing.T) {
	table := NewPriceTable()
	table.Add("VGT", MustParse("2024-01-05"), 500) // Friday

	// purchase recorded on Saturday: Friday's close applies
	l := NewLedger(NewBuy(MustParse("2024-01-06"), Technology, "VGT", Q(0), M(0, USD), M(1000, USD)))

	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	if !holdings[0].Quantity().Equal(Q(2)) {
		t.Errorf("Quantity = %s, want 2", holdings[0].Quantity())
	}
}

func TestBuildHoldingsMissingPrice(t *testing.T) {
	l := NewLedger(NewBuy(MustParse("2024-01-02"), Technology, "AAPL", Q(0), M(0, USD), M(2000, USD)))

	_, err := BuildHoldings(l, NewPriceTable())
	if err == nil {
		t.Fatal("expected an error")
	}
	var missing *MissingPriceDataError
	if !errors.As(err, &missing) {
		t.Fatalf("error %v is not a MissingPriceDataError", err)
	}
	if missing.Ticker != "AAPL" {
		t.Errorf("Ticker = %s, want AAPL", missing.Ticker)
	}
}

func TestBuildHoldingsSwapIsCashNeutral(t *testing.T) {
	d0, d1 := MustParse("2024-01-02"), MustParse("2024-02-01")
	table := NewPriceTable()
	table.Add("VGT", d0, 500)
	table.Add("VGT", d1, 520)
	table.Add("AAPL", d1, 200)

	sell, buy, err := NewSwap(d1, Technology, "AAPL", M(2000, USD))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger(NewBuy(d0, Technology, "VGT", Q(0), M(0, USD), M(10000, USD)), sell, buy)

	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	// traded by ticker, then cash
	if len(holdings) != 3 {
		t.Fatalf("got %d holdings, want 3", len(holdings))
	}
	aapl, vgt, cash := holdings[0], holdings[1], holdings[2]
	if aapl.Ticker != "AAPL" || vgt.Ticker != "VGT" || cash.Ticker != CashTicker {
		t.Fatalf("unexpected order: %s, %s, %s", aapl.Ticker, vgt.Ticker, cash.Ticker)
	}

	if !aapl.Quantity().Equal(Q(10)) {
		t.Errorf("AAPL quantity = %s, want 10", aapl.Quantity())
	}
	approx(t, "VGT quantity", vgt.QuantityAsOf(d1).AsFloat(), 20-2000.0/520)
	// the sell proceeds fund the buy leg exactly
	approx(t, "cash after swap", cash.BookAsOf(d1).AsFloat(), 0)
}

func TestBuildHoldingsOrder(t *testing.T) {
	d0, d1 := MustParse("2024-01-02"), MustParse("2024-02-01")
	table := NewPriceTable()
	table.Add("VGT", d0, 500)
	table.Add("VGT", d1, 520)
	table.Add("VHT", d0, 250)
	table.Add("AAPL", d1, 200)

	sell, buy, err := NewSwap(d1, Technology, "AAPL", M(2000, USD))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger(
		NewDeposit(d0, M(100, USD)),
		NewBuy(d0, Technology, "VGT", Q(0), M(0, USD), M(10000, USD)),
		NewBuy(d0, Healthcare, "VHT", Q(0), M(0, USD), M(5000, USD)),
		NewBuy(d0, FixedIncome, FixedIncomeTicker, Q(0), M(0, USD), M(1000, USD)),
		sell, buy,
	)

	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, h := range holdings {
		got = append(got, h.Ticker)
	}
	// traded by ticker regardless of ETF or stock, then fixed income, then cash
	want := []string{"AAPL", "VGT", "VHT", FixedIncomeTicker, CashTicker}
	if len(got) != len(want) {
		t.Fatalf("got %d holdings %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestBuildHoldingsCashRules(t *testing.T) {
	d0, d1 := MustParse("2024-01-02"), MustParse("2024-02-01")
	table := NewPriceTable()
	table.Add("VGT", d0, 500)
	table.Add("VGT", d1, 520)

	l := NewLedger(
		NewDeposit(d0, M(300, USD)),
		// an initial allocation buy is an external contribution, not a
		// draw on the cash bucket
		NewBuy(d0, Technology, "VGT", Q(0), M(0, USD), M(10000, USD)),
		NewSell(d1, Technology, "VGT", Q(0), M(0, USD), M(2000, USD)),
	)

	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	var cash, vgt *Holding
	for i := range holdings {
		switch holdings[i].Ticker {
		case CashTicker:
			cash = &holdings[i]
		case "VGT":
			vgt = &holdings[i]
		}
	}
	if cash == nil || vgt == nil {
		t.Fatal("missing holdings")
	}
	approx(t, "cash at inception", cash.BookAsOf(d0).AsFloat(), 300)
	approx(t, "cash after sale", cash.BookAsOf(d1).AsFloat(), 2300)
	approx(t, "VGT after sale", vgt.QuantityAsOf(d1).AsFloat(), 20-2000.0/520)
	if vgt.Closed() {
		t.Error("VGT should still be open")
	}
}

func TestBuildHoldingsFixedIncomeAccrues(t *testing.T) {
	d0, d1 := MustParse("2024-01-02"), MustParse("2024-02-01")
	l := NewLedger(
		NewBuy(d0, FixedIncome, FixedIncomeTicker, Q(0), M(0, USD), M(1000, USD)),
		NewBuy(d1, FixedIncome, FixedIncomeTicker, Q(0), M(0, USD), M(500, USD)),
	)

	holdings, err := BuildHoldings(l, NewPriceTable())
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(holdings))
	}
	fi := holdings[0]
	if fi.Kind != KindFixedIncome {
		t.Fatalf("Kind = %v", fi.Kind)
	}
	approx(t, "book at d0", fi.BookAsOf(d0).AsFloat(), 1000)
	approx(t, "book at d1", fi.BookAsOf(d1).AsFloat(), 1500)
}

func TestBuildHoldingsClosedPosition(t *testing.T) {
	d0, d1 := MustParse("2024-01-02"), MustParse("2024-02-01")
	table := NewPriceTable()
	table.Add("VGT", d0, 500)
	table.Add("VGT", d1, 520)

	l := NewLedger(
		NewBuy(d0, Technology, "VGT", Q(10), M(500, USD), M(5000, USD)),
		NewSell(d1, Technology, "VGT", Q(10), M(520, USD), M(5200, USD)),
	)
	holdings, err := BuildHoldings(l, table)
	if err != nil {
		t.Fatal(err)
	}
	var vgt *Holding
	for i := range holdings {
		if holdings[i].Ticker == "VGT" {
			vgt = &holdings[i]
		}
	}
	if !vgt.Closed() {
		t.Errorf("VGT should be closed, quantity %s", vgt.Quantity())
	}
}
