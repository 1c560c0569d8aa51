package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
)

// importCmd converts a legacy transactions.csv into ledger entries.
type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a legacy CSV file" }
func (*importCmd) Usage() string {
	return `smc import -f <file.csv>

  Reads a CSV with columns
    sector,ticker,invest_date,shares,price_per_share,amount_invested
  and appends the equivalent transactions to the ledger. Stock rows
  expand into swap pairs (ETF sell + stock buy); Cash rows become
  deposits.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "transactions.csv", "CSV file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	imported, err := smic.ImportCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	if err := imported.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Imported transactions are invalid: %v\n", err)
		return subcommands.ExitFailure
	}

	var txs []smic.Transaction
	for _, tx := range imported.Transactions() {
		txs = append(txs, tx)
	}
	return EncodeTransactions(txs...)
}
