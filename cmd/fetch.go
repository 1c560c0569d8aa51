package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
	"github.com/smicfund/smic/eodhd"
)

// fetchCmd updates the prices file from EODHD.
type fetchCmd struct {
	from string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily prices from EODHD for all ledger tickers" }
func (*fetchCmd) Usage() string {
	return `smc fetch [-from <date>]

  Downloads daily closes for every traded ticker in the ledger plus the
  benchmark, from the ledger's inception (or -from) to today, and
  rewrites the prices file. Needs an EODHD API key (flag -eodhd-api-key
  or environment EODHD_API_KEY).
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start date of the fetch window, defaults to the ledger inception")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	apiKey := eodhd.APIKey()
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no EODHD API key configured")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Ledger is empty, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	from := ledger.InceptionDate()
	if c.from != "" {
		from, err = smic.ParseDate(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	window := smic.NewRange(from, smic.Today())

	tickers := append(ledger.Tickers(), *benchmark)

	table, err := DecodePrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := eodhd.Update(ctx, apiKey, table, tickers, window); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodePrices(table); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prices file: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d ticker(s) over %s into %s\n", len(tickers), window, *pricesFile)
	return subcommands.ExitSuccess
}
