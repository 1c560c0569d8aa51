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

// weightsCmd displays the current sector allocation.
type weightsCmd struct {
	csv bool
}

func (*weightsCmd) Name() string     { return "weights" }
func (*weightsCmd) Synopsis() string { return "display the current sector weights" }
func (*weightsCmd) Usage() string {
	return `smc weights [-csv]

  Prints the latest per-sector allocation, split between the sector ETF
  and the individual stocks swapped out of it.
`
}

func (c *weightsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Output as CSV instead of a rendered table")
}

func (c *weightsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, _, err := valuations()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(series) == 0 {
		fmt.Fprintln(os.Stderr, "No valuation days; is the prices file empty?")
		return subcommands.ExitFailure
	}

	if c.csv {
		if err := smic.ExportWeightsCSV(os.Stdout, series); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.WeightsMarkdown(&series[len(series)-1]))
	return subcommands.ExitSuccess
}
