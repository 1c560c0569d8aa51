// Package renderer shapes the engine's reports into markdown documents
// suitable for terminal display or plain-text export.
package renderer

import (
	"fmt"

	"github.com/smicfund/smic"
)

// money renders a Money for table cells.
func money(m smic.Money) string { return m.String() }

// pct renders a Percent for table cells.
func pct(p smic.Percent) string { return p.String() }

// signed renders a Percent with its sign, "-" when flat.
func signed(p smic.Percent) string { return p.SignedString() }

// f2 renders a float with two decimals.
func f2(f float64) string { return fmt.Sprintf("%.2f", f) }
