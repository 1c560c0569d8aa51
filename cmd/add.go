package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
)

// buyCmd records a purchase in the ledger.
type buyCmd struct {
	date   string
	sector string
	ticker string
	shares float64
	price  float64
	amount float64
	memo   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of an ETF, stock or fixed income" }
func (*buyCmd) Usage() string {
	return `smc buy -s <sector> -t <ticker> -a <amount> [-d <date>] [-shares <n> -price <p>]

  Records a purchase. When shares and price are omitted the share count
  is derived from the amount and the last known price on that date.

Example:
$ smc buy -d 2024-01-02 -s Technology -t VGT -a 10000
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", smic.Today().String(), "Date of the purchase (YYYY-MM-DD)")
	f.StringVar(&c.sector, "s", "", "Sector of the asset (e.g. Technology, Fixed_Income)")
	f.StringVar(&c.ticker, "t", "", "Ticker of the asset")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares (optional)")
	f.Float64Var(&c.price, "price", 0, "Price per share (optional)")
	f.Float64Var(&c.amount, "a", 0, "Dollar amount of the purchase")
	f.StringVar(&c.memo, "m", "", "Optional memo")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, sector, status := parseDateSector(c.date, c.sector)
	if status != subcommands.ExitSuccess {
		return status
	}

	tx := smic.NewBuy(on, sector, c.ticker, smic.Q(c.shares), smic.M(c.price, smic.USD), smic.M(c.amount, smic.USD))
	tx.Memo = c.memo
	if _, err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransactions(tx)
}

// sellCmd records a sale in the ledger.
type sellCmd struct {
	date   string
	sector string
	ticker string
	shares float64
	price  float64
	amount float64
	memo   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, proceeds go to cash" }
func (*sellCmd) Usage() string {
	return `smc sell -s <sector> -t <ticker> -a <amount> [-d <date>] [-shares <n> -price <p>]

  Records a sale. Proceeds accumulate in the cash position.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", smic.Today().String(), "Date of the sale (YYYY-MM-DD)")
	f.StringVar(&c.sector, "s", "", "Sector of the asset")
	f.StringVar(&c.ticker, "t", "", "Ticker of the asset")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares (optional)")
	f.Float64Var(&c.price, "price", 0, "Price per share (optional)")
	f.Float64Var(&c.amount, "a", 0, "Dollar amount of the sale")
	f.StringVar(&c.memo, "m", "", "Optional memo")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, sector, status := parseDateSector(c.date, c.sector)
	if status != subcommands.ExitSuccess {
		return status
	}

	tx := smic.NewSell(on, sector, c.ticker, smic.Q(c.shares), smic.M(c.price, smic.USD), smic.M(c.amount, smic.USD))
	tx.Memo = c.memo
	if _, err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransactions(tx)
}

// depositCmd records external cash added to the portfolio.
type depositCmd struct {
	date   string
	amount float64
	memo   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record external cash added to the portfolio" }
func (*depositCmd) Usage() string {
	return `smc deposit -a <amount> [-d <date>]

  Records a cash deposit.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", smic.Today().String(), "Date of the deposit (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "a", 0, "Dollar amount of the deposit")
	f.StringVar(&c.memo, "m", "", "Optional memo")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := smic.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := smic.NewDeposit(on, smic.M(c.amount, smic.USD))
	tx.Memo = c.memo
	if _, err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransactions(tx)
}

// parseDateSector parses the two flags shared by trade commands.
func parseDateSector(date, sector string) (smic.Date, smic.Sector, subcommands.ExitStatus) {
	on, err := smic.ParseDate(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return smic.Date{}, "", subcommands.ExitUsageError
	}
	s, err := smic.ParseSector(sector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sector: %v\n", err)
		return smic.Date{}, "", subcommands.ExitUsageError
	}
	return on, s, subcommands.ExitSuccess
}
