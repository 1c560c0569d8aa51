package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
	"github.com/smicfund/smic/agent"
	"github.com/smicfund/smic/renderer"
	"google.golang.org/genai"
)

// assistCmd starts an interactive AI session about the current report.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask an AI analyst about the performance report" }
func (*assistCmd) Usage() string {
	return `smc assist [question]

  Generates the performance summary and opens an interactive session
  with an AI analyst grounded on it. Requires Gemini credentials in the
  environment.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initial := strings.Join(f.Args(), " ")

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
	report := renderer.SummaryMarkdown(smic.NewSummary(m, series))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin)
	if err := a.Run(ctx, client, report, initial); err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
