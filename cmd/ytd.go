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

// ytdCmd displays the year-to-date report with the swap progression table.
type ytdCmd struct {
	csv bool
}

func (*ytdCmd) Name() string     { return "ytd" }
func (*ytdCmd) Synopsis() string { return "display the year-to-date performance and swap progression" }
func (*ytdCmd) Usage() string {
	return `smc ytd [-csv]

  Restricts the report to the current calendar year and adds the
  per-sector table of ETF versus stock weights at the start and end of
  the year.
`
}

func (c *ytdCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Output the progression table as CSV")
}

func (c *ytdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, quotes, err := valuations()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	year := smic.YTD(series)
	drift := smic.DriftTable(year)

	if c.csv {
		if err := smic.ExportDriftCSV(os.Stdout, drift); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	m, err := smic.Derive(year)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := m.WithBenchmark(quotes, *benchmark); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no benchmark comparison: %v\n", err)
	}

	s := smic.NewSummary(m, year)
	printMarkdown(renderer.SummaryMarkdown(s))
	printMarkdown(renderer.DriftMarkdown("Year-to-Date ETF vs Stock Weights", drift))
	return subcommands.ExitSuccess
}
