package smic

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// tradeRecord is a decoding helper covering every field a buy or sell
// line may carry.
type tradeRecord struct {
	secCmd
	Shares Quantity        `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

func (r tradeRecord) trade() tradeCmd {
	return tradeCmd{
		secCmd: r.secCmd,
		Shares: r.Shares,
		Price:  M(r.Price, USD),
		Amount: M(r.Amount, USD),
	}
}

// DecodeLedger reads a stream of JSONL transaction lines and returns a
// chronologically sorted ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(line), err)
		}

		var tx Transaction
		switch identifier.Command {
		case CmdBuy:
			var rec tradeRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("invalid buy line %q: %w", string(line), err)
			}
			tx = Buy{rec.trade()}
		case CmdSell:
			var rec tradeRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("invalid sell line %q: %w", string(line), err)
			}
			tx = Sell{rec.trade()}
		case CmdDeposit:
			var rec struct {
				baseCmd
				Amount decimal.Decimal `json:"amount"`
			}
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("invalid deposit line %q: %w", string(line), err)
			}
			tx = Deposit{baseCmd: rec.baseCmd, Amount: M(rec.Amount, USD)}
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(line))
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction writes one transaction as a single JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form:
// chronological, stable field order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// priceRecord is one line of the prices file.
type priceRecord struct {
	Ticker string  `json:"ticker"`
	Date   Date    `json:"date"`
	Close  float64 `json:"close"`
}

// DecodePrices reads a JSONL price snapshot into a PriceTable.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	table := NewPriceTable()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec priceRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("invalid price line %q: %w", string(line), err)
		}
		table.Add(rec.Ticker, rec.Date, rec.Close)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read prices: %w", err)
	}
	return table, nil
}

// EncodePrices writes the table as JSONL, tickers sorted and dates
// chronological, so snapshots are reproducible byte for byte.
func EncodePrices(w io.Writer, table *PriceTable) error {
	for ticker, hist := range table.All() {
		for on, price := range hist.Values() {
			var obj jsonObjectWriter
			obj.Append("ticker", ticker)
			obj.Append("date", on)
			obj.Append("close", price)
			data, err := obj.MarshalJSON()
			if err != nil {
				return fmt.Errorf("could not marshal price for %s: %w", ticker, err)
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}
