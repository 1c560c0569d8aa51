package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
)

// swapCmd records both legs of an ETF-to-stock swap.
type swapCmd struct {
	date   string
	sector string
	ticker string
	amount float64
	memo   string
}

func (*swapCmd) Name() string     { return "swap" }
func (*swapCmd) Synopsis() string { return "swap a dollar amount of a sector ETF into a stock" }
func (*swapCmd) Usage() string {
	return `smc swap -s <sector> -t <ticker> -a <amount> [-d <date>]

  Sells <amount> of the sector's ETF and buys the same amount of the
  stock, on the same day. Both legs are appended to the ledger and share
  a swap id, so the pair stays verifiably dollar-neutral.

Example:
$ smc swap -d 2024-03-15 -s Technology -t AAPL -a 2000
`
}

func (c *swapCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", smic.Today().String(), "Date of the swap (YYYY-MM-DD)")
	f.StringVar(&c.sector, "s", "", "Sector to swap within")
	f.StringVar(&c.ticker, "t", "", "Stock ticker to swap into")
	f.Float64Var(&c.amount, "a", 0, "Dollar amount moved from the ETF to the stock")
	f.StringVar(&c.memo, "m", "", "Optional memo, e.g. the conviction behind the swap")
}

func (c *swapCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, sector, status := parseDateSector(c.date, c.sector)
	if status != subcommands.ExitSuccess {
		return status
	}

	sell, buy, err := smic.NewSwap(on, sector, c.ticker, smic.M(c.amount, smic.USD))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid swap: %v\n", err)
		return subcommands.ExitUsageError
	}
	sell.Memo = c.memo
	buy.Memo = c.memo
	if _, err := sell.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid swap: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := buy.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid swap: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransactions(sell, buy)
}
