package smic

import (
	"fmt"
	"strings"
)

// Sector identifies one slice of the portfolio's taxonomy: the eleven
// equity sectors of the fund's initial ETF basket, plus the two
// non-traded buckets Fixed Income and Cash.
type Sector string

const (
	Technology            Sector = "Technology"
	Healthcare            Sector = "Healthcare"
	Financials            Sector = "Financials"
	ConsumerDiscretionary Sector = "Consumer_Discretionary"
	CommunicationServices Sector = "Communication_Services"
	Industrials           Sector = "Industrials"
	ConsumerStaples       Sector = "Consumer_Staples"
	Energy                Sector = "Energy"
	Materials             Sector = "Materials"
	RealEstate            Sector = "Real_Estate"
	Utilities             Sector = "Utilities"
	FixedIncome           Sector = "Fixed_Income"
	Cash                  Sector = "Cash"
)

// Sentinel tickers for the non-traded buckets.
const (
	CashTicker        = "CASH"
	FixedIncomeTicker = "FIXED"
)

// BenchmarkTicker is the default benchmark symbol (S&P 500 index).
const BenchmarkTicker = "^GSPC"

// sectorETF maps each equity sector to its Vanguard sector ETF.
var sectorETF = map[Sector]string{
	Technology:            "VGT",
	Healthcare:            "VHT",
	Financials:            "VFH",
	ConsumerDiscretionary: "VCR",
	CommunicationServices: "VOX",
	Industrials:           "VIS",
	ConsumerStaples:       "VDC",
	Energy:                "VDE",
	Materials:             "VAW",
	RealEstate:            "VNQ",
	Utilities:             "VPU",
}

// equitySectors lists the equity sectors in a stable display order.
var equitySectors = []Sector{
	Technology, Healthcare, Financials, ConsumerDiscretionary,
	CommunicationServices, Industrials, ConsumerStaples, Energy,
	Materials, RealEstate, Utilities,
}

// EquitySectors returns the eleven equity sectors in stable order.
func EquitySectors() []Sector { return equitySectors }

// AllSectors returns every sector, equity first, then Fixed Income and Cash.
func AllSectors() []Sector {
	return append(append([]Sector{}, equitySectors...), FixedIncome, Cash)
}

// ETF returns the sector's Vanguard ETF ticker, or false for the
// non-traded buckets.
func (s Sector) ETF() (string, bool) {
	t, ok := sectorETF[s]
	return t, ok
}

// IsEquity reports whether s is one of the eleven equity sectors.
func (s Sector) IsEquity() bool {
	_, ok := sectorETF[s]
	return ok
}

func (s Sector) String() string { return string(s) }

// Display returns the sector name with spaces instead of underscores.
func (s Sector) Display() string { return strings.ReplaceAll(string(s), "_", " ") }

// ParseSector parses a sector name. It accepts spaces or underscores and
// is case-insensitive, because CSV sources are inconsistent about both.
func ParseSector(str string) (Sector, error) {
	canon := strings.ReplaceAll(strings.TrimSpace(str), " ", "_")
	for _, s := range AllSectors() {
		if strings.EqualFold(canon, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sector %q", str)
}

// Kind classifies an asset for valuation and attribution purposes.
type Kind int

const (
	KindETF Kind = iota
	KindStock
	KindFixedIncome
	KindCash
)

func (k Kind) String() string {
	switch k {
	case KindETF:
		return "etf"
	case KindStock:
		return "stock"
	case KindFixedIncome:
		return "fixed-income"
	case KindCash:
		return "cash"
	default:
		return "unknown"
	}
}

// Traded reports whether assets of this kind have a market price.
func (k Kind) Traded() bool { return k == KindETF || k == KindStock }

// KindOf derives the asset kind from its sector and ticker. Sector ETFs
// are recognized by ticker so that a stock bought inside Technology is
// distinguished from VGT itself.
func KindOf(sector Sector, ticker string) Kind {
	switch {
	case sector == Cash || ticker == CashTicker:
		return KindCash
	case sector == FixedIncome || ticker == FixedIncomeTicker:
		return KindFixedIncome
	}
	for _, etf := range sectorETF {
		if ticker == etf {
			return KindETF
		}
	}
	return KindStock
}
