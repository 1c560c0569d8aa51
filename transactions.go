package smic

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string identifying a transaction command.
type CommandType string

const (
	CmdBuy     CommandType = "buy"
	CmdSell    CommandType = "sell"
	CmdDeposit CommandType = "deposit"
)

// amountTolerance is the rounding slack allowed when reconciling
// shares*price against a recorded dollar amount, and when checking the
// dollar-neutrality of swap pairs.
var amountTolerance = decimal.NewFromFloat(0.01)

// Transaction is the common interface of all ledger records.
type Transaction interface {
	What() CommandType // the command type, e.g. "buy"
	When() Date        // the execution date
	Equal(Transaction) bool
	Validate() (Transaction, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`
	Date    Date        `json:"date"`
	Memo    string      `json:"memo,omitempty"`
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }
func (t baseCmd) Rationale() string { return t.Memo }

// Validate checks the base fields. A zero date defaults to today.
func (t *baseCmd) Validate() error {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	return nil
}

func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// secCmd is the component shared by security-based transactions.
type secCmd struct {
	baseCmd
	Sector Sector `json:"sector"`
	Ticker string `json:"ticker"`
	SwapID string `json:"swap,omitempty"` // links the two legs of a swap
}

func (t *secCmd) Validate() error {
	if err := t.baseCmd.Validate(); err != nil {
		return err
	}
	if t.Ticker == "" {
		return errors.New("ticker is missing")
	}
	if _, err := ParseSector(string(t.Sector)); err != nil {
		return err
	}
	return nil
}

// Kind derives the asset kind of the transaction's subject.
func (t secCmd) Kind() Kind { return KindOf(t.Sector, t.Ticker) }

func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("sector", t.Sector)
	w.Append("ticker", t.Ticker)
	w.Optional("swap", t.SwapID)
	return w.MarshalJSON()
}

// tradeCmd carries the economics of a buy or a sell. Shares and Price are
// optional: an absent Shares is derived from Amount at the execution-date
// price, an absent Price is taken from the price provider.
type tradeCmd struct {
	secCmd
	Shares Quantity `json:"shares,omitempty"`
	Price  Money    `json:"price,omitempty"`
	Amount Money    `json:"amount"`
}

func (t *tradeCmd) Validate() error {
	if err := t.secCmd.Validate(); err != nil {
		return err
	}
	if t.Amount.IsZero() && t.Shares.IsZero() {
		return errors.New("amount or shares is required")
	}
	if t.Amount.IsNegative() {
		return errors.New("amount must be positive")
	}
	if t.Shares.IsNegative() {
		return errors.New("shares must be positive; direction is carried by the command")
	}
	// When all three are present they must agree within rounding tolerance.
	if !t.Shares.IsZero() && !t.Price.IsZero() && !t.Amount.IsZero() {
		implied := t.Price.Mul(t.Shares)
		diff := implied.Sub(t.Amount).Decimal().Abs()
		if diff.GreaterThan(amountTolerance) {
			return integrityErrorf("%s %s: shares*price %s does not match amount %s",
				t.Ticker, t.Date, implied, t.Amount)
		}
	}
	return nil
}

func (t tradeCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	if !t.Shares.IsZero() {
		w.Append("shares", t.Shares)
	}
	if !t.Price.IsZero() {
		w.Append("price", t.Price)
	}
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Buy records the purchase of a security, or the funding of the fixed
// income bucket when the ticker is the FIXED sentinel.
type Buy struct{ tradeCmd }

// NewBuy creates a buy transaction. Zero shares or price mean "derive it".
func NewBuy(on Date, sector Sector, ticker string, shares Quantity, price, amount Money) Buy {
	return Buy{tradeCmd{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: on}, Sector: sector, Ticker: ticker},
		Shares: shares, Price: price, Amount: amount,
	}}
}

func (t Buy) Validate() (Transaction, error) {
	err := t.tradeCmd.Validate()
	return t, err
}

func (t Buy) Equal(o Transaction) bool {
	b, ok := o.(Buy)
	return ok && t.secCmd == b.secCmd && t.Shares.Equal(b.Shares) &&
		t.Price.Equal(b.Price) && t.Amount.Equal(b.Amount)
}

// Sell records a full or partial disposal of a security.
type Sell struct{ tradeCmd }

// NewSell creates a sell transaction. Zero shares or price mean "derive it".
func NewSell(on Date, sector Sector, ticker string, shares Quantity, price, amount Money) Sell {
	return Sell{tradeCmd{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdSell, Date: on}, Sector: sector, Ticker: ticker},
		Shares: shares, Price: price, Amount: amount,
	}}
}

func (t Sell) Validate() (Transaction, error) {
	err := t.tradeCmd.Validate()
	return t, err
}

func (t Sell) Equal(o Transaction) bool {
	s, ok := o.(Sell)
	return ok && t.secCmd == s.secCmd && t.Shares.Equal(s.Shares) &&
		t.Price.Equal(s.Price) && t.Amount.Equal(s.Amount)
}

// Deposit records a cash contribution to the portfolio.
type Deposit struct {
	baseCmd
	Amount Money `json:"amount"`
}

// NewDeposit creates a cash deposit.
func NewDeposit(on Date, amount Money) Deposit {
	return Deposit{baseCmd: baseCmd{Command: CmdDeposit, Date: on}, Amount: amount}
}

func (t Deposit) Validate() (Transaction, error) {
	if err := t.baseCmd.Validate(); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, errors.New("deposit amount must be positive")
	}
	return t, nil
}

func (t Deposit) Equal(o Transaction) bool {
	d, ok := o.(Deposit)
	return ok && t.baseCmd == d.baseCmd && t.Amount.Equal(d.Amount)
}

func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// NewSwap builds the two legs of an ETF-to-stock swap: sell 'amount' of the
// sector's ETF and buy the same dollar amount of 'ticker', on the same day.
// The two legs share a swap identifier so validation can enforce
// dollar-neutrality; the engine itself never special-cases swaps.
func NewSwap(on Date, sector Sector, ticker string, amount Money) (Sell, Buy, error) {
	etf, ok := sector.ETF()
	if !ok {
		return Sell{}, Buy{}, fmt.Errorf("sector %s has no ETF to swap out of", sector)
	}
	if ticker == etf {
		return Sell{}, Buy{}, fmt.Errorf("cannot swap %s into itself", etf)
	}
	id := fmt.Sprintf("%s-%s-%s", on, etf, ticker)
	sell := NewSell(on, sector, etf, Q(0), Money{}, amount)
	sell.SwapID = id
	buy := NewBuy(on, sector, ticker, Q(0), Money{}, amount)
	buy.SwapID = id
	return sell, buy, nil
}
