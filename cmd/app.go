// Package cmd implements the smc command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/smicfund/smic"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&swapCmd{},
	&importCmd{},
	&fmtCmd{},
	&fetchCmd{},
	&searchCmd{},
	&summaryCmd{},
	&historyCmd{},
	&weightsCmd{},
	&ytdCmd{},
	&assistCmd{},
	&topicCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables for the shared flags.

var (
	ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
	pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the daily prices file (JSONL format)")
	benchmark  = flag.String("benchmark", smic.BenchmarkTicker, "Benchmark ticker for performance comparison")
)

// DecodeLedger reads the app ledger file. A missing file is an empty
// ledger, so that the first 'add' does not require a setup step.
func DecodeLedger() (*smic.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger file %q does not exist, starting empty", *ledgerFile)
		return smic.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return smic.DecodeLedger(f)
}

// DecodePrices reads the app prices file. A missing file is an empty
// table.
func DecodePrices() (*smic.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, prices file %q does not exist, starting empty", *pricesFile)
		return smic.NewPriceTable(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return smic.DecodePrices(f)
}

// EncodeTransactions appends transactions to the app ledger file.
func EncodeTransactions(txs ...smic.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	for _, tx := range txs {
		if err := smic.EncodeTransaction(f, tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Successfully appended %d transaction(s) to %s\n", len(txs), *ledgerFile)
	return subcommands.ExitSuccess
}

// EncodePrices rewrites the app prices file.
func EncodePrices(table *smic.PriceTable) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return smic.EncodePrices(f, table)
}

// valuations loads the ledger and the prices and runs the daily
// valuation walk. Most reporting commands start here.
func valuations() ([]smic.DailyValuation, *smic.PriceTable, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load ledger %q: %w", *ledgerFile, err)
	}
	quotes, err := DecodePrices()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load prices %q: %w", *pricesFile, err)
	}
	holdings, err := smic.BuildHoldings(ledger, quotes)
	if err != nil {
		return nil, nil, err
	}
	series, err := smic.Valuate(holdings, quotes)
	if err != nil {
		return nil, nil, err
	}
	return series, quotes, nil
}
