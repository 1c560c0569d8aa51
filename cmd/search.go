package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/smicfund/smic/eodhd"
)

// searchCmd looks up ticker symbols on EODHD.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search EODHD for a ticker symbol" }
func (*searchCmd) Usage() string {
	return `smc search <query>

  Searches the EODHD symbol database, useful to find the exact ticker
  before recording a swap.
`
}

func (*searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: search needs a query")
		return subcommands.ExitUsageError
	}
	apiKey := eodhd.APIKey()
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no EODHD API key configured")
		return subcommands.ExitUsageError
	}

	results, err := eodhd.Search(apiKey, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, r := range results {
		fmt.Printf("%-10s %-8s %-4s %s\n", r.Code, r.Exchange, r.Currency, r.Name)
	}
	return subcommands.ExitSuccess
}
