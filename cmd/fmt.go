package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
)

// fmtCmd rewrites the ledger file in canonical form.
type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validate and rewrite the ledger file in canonical form"
}
func (*fmtCmd) Usage() string {
	return `smc fmt

  Reads the whole ledger, validates it, and writes it back sorted by
  date with stable field order. Same-day transactions keep the order in
  which they were recorded.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Ledger is invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	tmp := *ledgerFile + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", tmp, err)
		return subcommands.ExitFailure
	}
	if err := smic.EncodeLedger(out, ledger); err != nil {
		out.Close()
		os.Remove(tmp)
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %q: %v\n", tmp, err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(tmp, *ledgerFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error replacing %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Formatted %d transaction(s) in %s\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
