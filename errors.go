package smic

import "fmt"

// MissingPriceDataError reports that no price exists at or before a date
// required to resolve a transaction. It is fatal to position building:
// holdings cannot be reconstructed consistently with a gap.
type MissingPriceDataError struct {
	Ticker string
	On     Date
}

func (e *MissingPriceDataError) Error() string {
	return fmt.Sprintf("no price for %s at or before %s", e.Ticker, e.On)
}

// InsufficientHistoryError reports that a series has too few valuation
// points for an annualized computation. Raw value series remain valid.
type InsufficientHistoryError struct {
	Points int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: %d valuation point(s), need at least 2", e.Points)
}

// MissingBenchmarkDataError reports that the benchmark series does not
// cover the required window. Only benchmark-relative metrics are affected.
type MissingBenchmarkDataError struct {
	Ticker string
	Window Range
}

func (e *MissingBenchmarkDataError) Error() string {
	return fmt.Sprintf("benchmark %s does not cover %s", e.Ticker, e.Window)
}

// DataIntegrityError reports an inconsistency in the ledger itself: an
// asset changing sector or kind across transactions, or a swap that is not
// dollar-neutral. It is always fatal and never silently corrected.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string { return "data integrity: " + e.Reason }

func integrityErrorf(format string, args ...any) *DataIntegrityError {
	return &DataIntegrityError{Reason: fmt.Sprintf(format, args...)}
}
