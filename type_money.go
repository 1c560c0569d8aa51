package smic

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
// The portfolio is USD-denominated; the currency is kept explicit so that
// formatting and equality stay honest.
type Money struct {
	value decimal.Decimal
	cur   string
}

// USD is the reporting currency of the fund.
const USD = "USD"

// M builds a Money from any numeric type, in the given currency.
func M[T float32 | float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns a never-nil go-money currency for formatting.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String renders the amount with its currency formatter, e.g. "$10,000.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && sameCur(m, n) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money         { return Money{value: m.value.Div(q.value), cur: m.cur} }

// DivPrice returns how many shares the amount buys at price n.
func (m Money) DivPrice(n Money) Quantity { return Quantity{value: m.value.Div(n.value)} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// AsFloat returns the amount as a float64, for metrics ratios.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// Decimal returns the exact decimal amount.
func (m Money) Decimal() decimal.Decimal { return m.value }

// cur makes the "" currency totally weak: the zero Money combines with any.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}

func sameCur(a, b Money) bool {
	return a.cur == b.cur || a.cur == "" || b.cur == ""
}

// MarshalJSON encodes the amount as a bare decimal number.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

func (m *Money) UnmarshalJSON(b []byte) error {
	m.cur = USD
	return m.value.UnmarshalJSON(b)
}
