package smic

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// Ledger is an ordered set of immutable transaction records: the initial
// allocation events plus later swap events. Transactions are kept in
// chronological order; same-day transactions preserve their insertion
// order, which is the causal order of entry.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger from the given transactions.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, 0, len(txs))}
	l.Append(txs...)
	return l
}

// Append appends transactions and restores chronological order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts by date only; the sort is stable so same-day
// transactions keep their relative insertion order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions yields each transaction in chronological order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// InceptionDate returns the date of the earliest transaction, which is the
// portfolio's inception. The zero Date means the ledger is empty.
func (l *Ledger) InceptionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// Tickers returns the sorted set of traded tickers appearing in the ledger.
func (l *Ledger) Tickers() []string {
	set := make(map[string]struct{})
	for _, tx := range l.transactions {
		switch v := tx.(type) {
		case Buy:
			if v.Kind().Traded() {
				set[v.Ticker] = struct{}{}
			}
		case Sell:
			if v.Kind().Traded() {
				set[v.Ticker] = struct{}{}
			}
		}
	}
	tickers := slices.Collect(maps.Keys(set))
	slices.Sort(tickers)
	return tickers
}

// Validate checks the whole ledger for correctness before any valuation
// work: per-transaction validity, sector/kind consistency per asset, date
// ordering against inception, and dollar-neutrality of swap pairs.
// Violations are never silently corrected.
func (l *Ledger) Validate() error {
	var errs error

	inception := l.InceptionDate()

	type identity struct {
		sector Sector
		kind   Kind
	}
	seen := make(map[string]identity)
	type swapLegs struct {
		sell, buy *tradeCmd
		date      Date
	}
	swaps := make(map[string]*swapLegs)

	for i, tx := range l.transactions {
		if _, err := tx.Validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s transaction on %s: %w", tx.What(), tx.When(), err))
			continue
		}
		if tx.When().Before(inception) {
			// cannot happen on a sorted ledger, kept as an invariant check
			errs = errors.Join(errs, integrityErrorf("transaction %d predates inception %s", i, inception))
		}

		var trade *tradeCmd
		switch v := tx.(type) {
		case Buy:
			trade = &v.tradeCmd
		case Sell:
			trade = &v.tradeCmd
		default:
			continue
		}

		// An asset never changes sector or kind across its lifetime.
		id := identity{sector: trade.Sector, kind: trade.Kind()}
		if prev, ok := seen[trade.Ticker]; !ok {
			seen[trade.Ticker] = id
		} else if prev != id {
			errs = errors.Join(errs, integrityErrorf(
				"asset %s changes from %s/%s to %s/%s across transactions",
				trade.Ticker, prev.sector, prev.kind, id.sector, id.kind))
		}

		if trade.SwapID != "" {
			legs := swaps[trade.SwapID]
			if legs == nil {
				legs = &swapLegs{date: trade.Date}
				swaps[trade.SwapID] = legs
			}
			switch tx.(type) {
			case Sell:
				legs.sell = trade
			case Buy:
				legs.buy = trade
			}
			if trade.Date != legs.date {
				errs = errors.Join(errs, integrityErrorf("swap %s spans multiple dates", trade.SwapID))
			}
		}
	}

	// A swap must sell an ETF and buy a stock in the same sector for the
	// same dollar amount, within tolerance.
	for id, legs := range swaps {
		if legs.sell == nil || legs.buy == nil {
			errs = errors.Join(errs, integrityErrorf("swap %s is missing a leg", id))
			continue
		}
		if legs.sell.Sector != legs.buy.Sector {
			errs = errors.Join(errs, integrityErrorf("swap %s crosses sectors %s and %s",
				id, legs.sell.Sector, legs.buy.Sector))
		}
		if legs.sell.Kind() != KindETF || legs.buy.Kind() != KindStock {
			errs = errors.Join(errs, integrityErrorf("swap %s must sell an ETF and buy a stock", id))
		}
		diff := legs.sell.Amount.Sub(legs.buy.Amount).Decimal().Abs()
		if diff.GreaterThan(amountTolerance) {
			errs = errors.Join(errs, integrityErrorf("swap %s is not dollar-neutral: sold %s, bought %s",
				id, legs.sell.Amount, legs.buy.Amount))
		}
	}

	return errs
}
