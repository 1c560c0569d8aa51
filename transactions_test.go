package smic

import (
	"strings"
	"testing"
)

func TestTradeValidate(t *testing.T) {
	on := MustParse("2024-03-15")

	tests := []struct {
		name    string
		tx      Transaction
		wantErr string
	}{
		{
			name: "amount only is enough",
			tx:   NewBuy(on, Technology, "VGT", Q(0), M(0, USD), M(10000, USD)),
		},
		{
			name: "shares and price without amount",
			tx:   NewBuy(on, Technology, "VGT", Q(10), M(500, USD), M(0, USD)),
		},
		{
			name:    "no amount and no shares",
			tx:      NewBuy(on, Technology, "VGT", Q(0), M(0, USD), M(0, USD)),
			wantErr: "amount or shares",
		},
		{
			name:    "missing ticker",
			tx:      NewBuy(on, Technology, "", Q(0), M(0, USD), M(10000, USD)),
			wantErr: "ticker",
		},
		{
			name:    "unknown sector",
			tx:      NewBuy(on, "Crypto", "BTC", Q(0), M(0, USD), M(10000, USD)),
			wantErr: "unknown sector",
		},
		{
			name:    "shares times price disagrees with amount",
			tx:      NewBuy(on, Technology, "VGT", Q(10), M(500, USD), M(6000, USD)),
			wantErr: "does not match amount",
		},
		{
			name: "shares times price agrees within a cent",
			tx:   NewBuy(on, Technology, "VGT", Q(10), M(500, USD), M(5000.004, USD)),
		},
		{
			name:    "negative deposit",
			tx:      NewDeposit(on, M(-100, USD)),
			wantErr: "positive",
		},
		{
			name: "valid deposit",
			tx:   NewDeposit(on, M(5000, USD)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.tx.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestNewSwap(t *testing.T) {
	on := MustParse("2024-03-15")
	sell, buy, err := NewSwap(on, Technology, "AAPL", M(2000, USD))
	if err != nil {
		t.Fatal(err)
	}

	if sell.Ticker != "VGT" {
		t.Errorf("sell leg ticker = %s, want VGT", sell.Ticker)
	}
	if buy.Ticker != "AAPL" {
		t.Errorf("buy leg ticker = %s, want AAPL", buy.Ticker)
	}
	if sell.SwapID == "" || sell.SwapID != buy.SwapID {
		t.Errorf("legs do not share a swap id: %q vs %q", sell.SwapID, buy.SwapID)
	}
	if !sell.Amount.Equal(buy.Amount) {
		t.Errorf("legs are not dollar-neutral: %s vs %s", sell.Amount, buy.Amount)
	}
	if sell.Date != on || buy.Date != on {
		t.Error("legs are not same-day")
	}
}

func TestNewSwapRejectsDegenerate(t *testing.T) {
	on := MustParse("2024-03-15")
	if _, _, err := NewSwap(on, FixedIncome, "AAPL", M(2000, USD)); err == nil {
		t.Error("expected an error swapping out of Fixed Income")
	}
	if _, _, err := NewSwap(on, Technology, "VGT", M(2000, USD)); err == nil {
		t.Error("expected an error swapping VGT into itself")
	}
}

func TestZeroDateDefaultsToToday(t *testing.T) {
	tx, err := NewDeposit(Date{}, M(100, USD)).Validate()
	if err != nil {
		t.Fatal(err)
	}
	if tx.When() != Today() {
		t.Errorf("When() = %v, want today", tx.When())
	}
}

func TestTransactionEqual(t *testing.T) {
	on := MustParse("2024-03-15")
	a := NewBuy(on, Technology, "AAPL", Q(10), M(200, USD), M(2000, USD))
	b := NewBuy(on, Technology, "AAPL", Q(10), M(200, USD), M(2000, USD))
	c := NewBuy(on, Technology, "AAPL", Q(11), M(200, USD), M(2200, USD))

	if !a.Equal(b) {
		t.Error("identical buys should be equal")
	}
	if a.Equal(c) {
		t.Error("different share counts should not be equal")
	}
	if a.Equal(NewSell(on, Technology, "AAPL", Q(10), M(200, USD), M(2000, USD))) {
		t.Error("a buy should not equal a sell")
	}

	var dep Transaction = NewDeposit(on, M(100, USD))
	if !dep.Equal(NewDeposit(on, M(100, USD))) {
		t.Error("identical deposits should be equal")
	}
}
