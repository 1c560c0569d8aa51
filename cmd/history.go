package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
	"github.com/smicfund/smic/renderer"
)

// historyCmd displays the daily valuation series.
type historyCmd struct {
	csv bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily portfolio value series" }
func (*historyCmd) Usage() string {
	return `smc history [-csv]

  Prints the portfolio value for every trading day since inception,
  with the ETF/stock split and incomplete days marked.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Output as CSV instead of a rendered table")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, _, err := valuations()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.csv {
		if err := smic.ExportHistoryCSV(os.Stdout, series); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	m, err := smic.Derive(series)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(series, m))
	return subcommands.ExitSuccess
}
