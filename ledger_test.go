package smic

import (
	"errors"
	"slices"
	"testing"
)

func TestLedgerSortIsStable(t *testing.T) {
	d1 := MustParse("2024-01-02")
	d2 := MustParse("2024-03-15")

	// appended out of order; same-day entries must keep insertion order
	sell, buy, err := NewSwap(d2, Technology, "AAPL", M(2000, USD))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger()
	l.Append(sell, buy)
	l.Append(NewBuy(d1, Technology, "VGT", Q(20), M(500, USD), M(10000, USD)))

	var got []Transaction
	for _, tx := range l.Transactions() {
		got = append(got, tx)
	}
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	if got[0].When() != d1 {
		t.Errorf("first transaction on %v, want %v", got[0].When(), d1)
	}
	if _, ok := got[1].(Sell); !ok {
		t.Errorf("same-day order lost: got %T before %T", got[1], got[2])
	}
	if _, ok := got[2].(Buy); !ok {
		t.Errorf("same-day order lost: got %T last", got[2])
	}
}

func TestLedgerInceptionAndTickers(t *testing.T) {
	l := NewLedger(
		NewDeposit(MustParse("2024-01-01"), M(500, USD)),
		NewBuy(MustParse("2024-01-02"), Technology, "VGT", Q(0), M(0, USD), M(10000, USD)),
		NewBuy(MustParse("2024-01-02"), FixedIncome, "FIXED", Q(0), M(0, USD), M(1000, USD)),
		NewBuy(MustParse("2024-01-03"), Healthcare, "VHT", Q(0), M(0, USD), M(5000, USD)),
	)

	if got := l.InceptionDate(); got != MustParse("2024-01-01") {
		t.Errorf("InceptionDate = %v", got)
	}
	if got := l.NewestTransactionDate(); got != MustParse("2024-01-03") {
		t.Errorf("NewestTransactionDate = %v", got)
	}

	// only traded assets have tickers to price
	want := []string{"VGT", "VHT"}
	if got := l.Tickers(); !slices.Equal(got, want) {
		t.Errorf("Tickers = %v, want %v", got, want)
	}
}

func TestLedgerValidateKindChange(t *testing.T) {
	l := NewLedger(
		NewBuy(MustParse("2024-01-02"), Technology, "AAPL", Q(10), M(200, USD), M(2000, USD)),
		NewBuy(MustParse("2024-02-02"), Healthcare, "AAPL", Q(5), M(200, USD), M(1000, USD)),
	)
	err := l.Validate()
	if err == nil {
		t.Fatal("expected a validation error for a sector change")
	}
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error %v is not a DataIntegrityError", err)
	}
}

func TestLedgerValidateSwap(t *testing.T) {
	on := MustParse("2024-03-15")

	t.Run("valid pair", func(t *testing.T) {
		sell, buy, err := NewSwap(on, Technology, "AAPL", M(2000, USD))
		if err != nil {
			t.Fatal(err)
		}
		l := NewLedger(sell, buy)
		if err := l.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})

	t.Run("missing leg", func(t *testing.T) {
		sell, _, err := NewSwap(on, Technology, "AAPL", M(2000, USD))
		if err != nil {
			t.Fatal(err)
		}
		l := NewLedger(sell)
		if err := l.Validate(); err == nil {
			t.Error("expected an error for a swap missing its buy leg")
		}
	})

	t.Run("not dollar-neutral", func(t *testing.T) {
		sell, buy, err := NewSwap(on, Technology, "AAPL", M(2000, USD))
		if err != nil {
			t.Fatal(err)
		}
		buy.Amount = M(2100, USD)
		l := NewLedger(sell, buy)
		if err := l.Validate(); err == nil {
			t.Error("expected an error for unequal swap legs")
		}
	})

	t.Run("crosses dates", func(t *testing.T) {
		sell, buy, err := NewSwap(on, Technology, "AAPL", M(2000, USD))
		if err != nil {
			t.Fatal(err)
		}
		buy.Date = on.Add(1)
		l := NewLedger(sell, buy)
		if err := l.Validate(); err == nil {
			t.Error("expected an error for a swap spanning two dates")
		}
	})
}
