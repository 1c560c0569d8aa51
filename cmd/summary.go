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

// summaryCmd displays the portfolio performance summary.
type summaryCmd struct {
	csv bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `smc summary [-csv]

  Values the portfolio on every trading day since inception and prints
  total return, CAGR, maximum drawdown and the benchmark comparison.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Output as CSV instead of a rendered report")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, quotes, err := valuations()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	m, err := smic.Derive(series)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := m.WithBenchmark(quotes, *benchmark); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no benchmark comparison: %v\n", err)
	}

	s := smic.NewSummary(m, series)
	if c.csv {
		if err := smic.ExportSummaryCSV(os.Stdout, s); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}
