package smic

import (
	"slices"
	"strings"
)

// Holding is the derived per-asset position: an open date, a running
// signed share quantity, and an owning sector fixed at the asset's first
// transaction. Cash and fixed income holdings carry a book amount instead
// of a share quantity. A holding whose quantity returns to zero is
// retained (closed) and contributes zero value going forward.
type Holding struct {
	Ticker   string
	Sector   Sector
	Kind     Kind
	OpenDate Date

	qty  *History[Quantity] // running shares as of date, traded kinds
	book *History[Money]    // running book amount, cash and fixed income
}

// QuantityAsOf returns the net share quantity held on a given date.
func (h *Holding) QuantityAsOf(on Date) Quantity {
	q, ok := h.qty.ValueAsOf(on)
	if !ok {
		return Q(0)
	}
	return q
}

// BookAsOf returns the accrued book amount on a given date, for cash and
// fixed income holdings.
func (h *Holding) BookAsOf(on Date) Money {
	m, ok := h.book.ValueAsOf(on)
	if !ok {
		return M(0, USD)
	}
	return m
}

// Quantity returns the final net share quantity.
func (h *Holding) Quantity() Quantity {
	_, q := h.qty.Latest()
	return q
}

// Closed reports whether the holding's final quantity is zero.
func (h *Holding) Closed() bool { return h.Kind.Traded() && h.Quantity().IsZero() }

// BuildHoldings converts the ledger into per-asset holdings. It is a pure
// function of the ledger and price lookups: transactions are grouped by
// ticker in stable date order, missing shares are derived from the dollar
// amount at the execution-date price (carried forward when the exact date
// is a non-trading day), and quantities accumulate additively.
//
// The ledger is validated first; a *MissingPriceDataError is returned when
// a transaction's shares cannot be resolved.
func BuildHoldings(l *Ledger, quotes Quotes) ([]Holding, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	lookup := AsOf(quotes)

	index := make(map[string]*Holding)
	var order []string

	open := func(ticker string, sector Sector, kind Kind, on Date) *Holding {
		h, ok := index[ticker]
		if !ok {
			h = &Holding{
				Ticker:   ticker,
				Sector:   sector,
				Kind:     kind,
				OpenDate: on,
				qty:      &History[Quantity]{},
				book:     &History[Money]{},
			}
			index[ticker] = h
			order = append(order, ticker)
		}
		return h
	}

	// resolve returns the transaction's share count and dollar amount,
	// deriving whichever is absent from the execution-date price.
	resolve := func(t *tradeCmd) (Quantity, Money, error) {
		shares, amount := t.Shares, t.Amount
		if !shares.IsZero() && !amount.IsZero() {
			return shares, amount, nil
		}
		price := t.Price
		if price.IsZero() {
			p, ok := lookup(t.Ticker, t.Date)
			if !ok {
				return Q(0), Money{}, &MissingPriceDataError{Ticker: t.Ticker, On: t.Date}
			}
			price = M(p, USD)
		}
		if shares.IsZero() {
			shares = amount.DivPrice(price)
		} else {
			amount = price.Mul(shares)
		}
		return shares, amount, nil
	}

	// Cash proceeds accumulate from sells; a buy consumes cash only when it
	// settles a paired sale (a swap leg). Initial allocation buys are
	// external contributions and leave the cash bucket untouched.
	cashDelta := func(tx Transaction, amount Money) Money {
		switch v := tx.(type) {
		case Deposit:
			return v.Amount
		case Sell:
			return amount
		case Buy:
			if v.SwapID != "" {
				return amount.Neg()
			}
		}
		return M(0, USD)
	}

	cash := M(0, USD)
	for _, tx := range l.transactions {
		switch v := tx.(type) {
		case Deposit:
			cash = cash.Add(cashDelta(tx, v.Amount))
			h := open(CashTicker, Cash, KindCash, v.Date)
			h.book.Append(v.Date, cash)

		case Buy, Sell:
			var trade *tradeCmd
			sign := Q(1)
			if b, ok := tx.(Buy); ok {
				trade = &b.tradeCmd
			} else {
				s := tx.(Sell)
				trade = &s.tradeCmd
				sign = Q(-1)
			}

			kind := trade.Kind()
			switch kind {
			case KindCash:
				cash = cash.Add(trade.Amount.Mul(sign))
				h := open(CashTicker, Cash, KindCash, trade.Date)
				h.book.Append(trade.Date, cash)

			case KindFixedIncome:
				// accrues at recorded amount, no market price lookup
				h := open(trade.Ticker, trade.Sector, kind, trade.Date)
				_, prev := h.book.Latest()
				h.book.Append(trade.Date, prev.Add(trade.Amount.Mul(sign)))

			default:
				shares, amount, err := resolve(trade)
				if err != nil {
					return nil, err
				}
				h := open(trade.Ticker, trade.Sector, kind, trade.Date)
				running := h.QuantityAsOf(trade.Date).Add(shares.Mul(sign))
				h.qty.Append(trade.Date, running)

				if delta := cashDelta(tx, amount); !delta.IsZero() {
					cash = cash.Add(delta)
					ch := open(CashTicker, Cash, KindCash, trade.Date)
					ch.book.Append(trade.Date, cash)
				}
			}
		}
	}

	holdings := make([]Holding, 0, len(order))
	for _, ticker := range order {
		holdings = append(holdings, *index[ticker])
	}
	// deterministic output: traded assets by ticker, then fixed income, then cash
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		if a.Kind.Traded() != b.Kind.Traded() {
			if a.Kind.Traded() {
				return -1
			}
			return 1
		}
		if a.Kind.Traded() {
			return strings.Compare(a.Ticker, b.Ticker)
		}
		return int(a.Kind) - int(b.Kind)
	})
	return holdings, nil
}
