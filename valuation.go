package smic

import (
	"slices"
)

// SectorValue splits one sector's value into its ETF-sourced and
// stock-sourced parts. The split is determined solely by asset kind.
type SectorValue struct {
	ETF   Money
	Stock Money
}

// Total returns the sector's combined value.
func (v SectorValue) Total() Money { return v.ETF.Add(v.Stock) }

// DailyValuation is the portfolio state for one trading day.
type DailyValuation struct {
	Date        Date
	Total       Money
	PerAsset    map[string]Money      // ticker (or FIXED sentinel) to value
	PerSector   map[Sector]SectorValue // equity sectors only
	Cash        Money
	FixedIncome Money

	// Incomplete marks a day where a held asset had no resolvable price;
	// the total is computed from whatever is resolvable.
	Incomplete bool
	Missing    []string // tickers that contributed zero on this day
}

// Valuate walks the trading-day calendar from portfolio inception to the
// last available price date and computes, for each day, total value,
// per-asset value, per-sector value and the ETF-vs-stock classification.
//
// The calendar is the union of all dates for which the provider has a
// price for an actively-held traded asset, intersected with
// [inception, last available date]; non-trading days are skipped entirely.
// Holdings drift freely: no value is ever redistributed across assets.
// The walk is strictly sequential and the result depends only on its
// inputs, so a re-run over the same snapshots is bit-identical.
func Valuate(holdings []Holding, quotes Quotes) ([]DailyValuation, error) {
	if len(holdings) == 0 {
		return nil, nil
	}

	inception := holdings[0].OpenDate
	for _, h := range holdings {
		if h.OpenDate.Before(inception) {
			inception = h.OpenDate
		}
	}

	// Fetch each traded asset's full series once; the walk then only does
	// in-memory as-of lookups.
	series := make(map[string]*History[float64])
	var last Date
	calendar := make(map[Date]struct{})
	for _, h := range holdings {
		if !h.Kind.Traded() {
			continue
		}
		hist := quotes.PriceRange(h.Ticker, allTime)
		series[h.Ticker] = hist
		for on := range hist.Values() {
			if on.Before(h.OpenDate) || on.Before(inception) {
				continue
			}
			calendar[on] = struct{}{}
			if on.After(last) {
				last = on
			}
		}
	}

	days := make([]Date, 0, len(calendar))
	for on := range calendar {
		days = append(days, on)
	}
	slices.SortFunc(days, Date.Compare)

	valuations := make([]DailyValuation, 0, len(days))
	for _, on := range days {
		v := DailyValuation{
			Date:      on,
			Total:     M(0, USD),
			PerAsset:  make(map[string]Money),
			PerSector: make(map[Sector]SectorValue),
			Cash:      M(0, USD),
		}
		for _, s := range EquitySectors() {
			v.PerSector[s] = SectorValue{ETF: M(0, USD), Stock: M(0, USD)}
		}

		for i := range holdings {
			h := &holdings[i]
			if h.OpenDate.After(on) {
				continue
			}

			switch h.Kind {
			case KindCash:
				v.Cash = v.Cash.Add(h.BookAsOf(on))
				continue
			case KindFixedIncome:
				book := h.BookAsOf(on)
				v.FixedIncome = v.FixedIncome.Add(book)
				v.PerAsset[h.Ticker] = v.PerAsset[h.Ticker].Add(book)
				continue
			}

			qty := h.QuantityAsOf(on)
			value := M(0, USD)
			price, ok := series[h.Ticker].ValueAsOf(on)
			switch {
			case ok:
				value = M(price, USD).Mul(qty)
			case !qty.IsZero():
				// held, but no price at or before this day: contributes
				// zero and the day is reported incomplete, not fatal
				v.Incomplete = true
				v.Missing = append(v.Missing, h.Ticker)
			}
			v.PerAsset[h.Ticker] = v.PerAsset[h.Ticker].Add(value)

			if h.Sector.IsEquity() {
				sv := v.PerSector[h.Sector]
				if h.Kind == KindETF {
					sv.ETF = sv.ETF.Add(value)
				} else {
					sv.Stock = sv.Stock.Add(value)
				}
				v.PerSector[h.Sector] = sv
			}
		}

		for _, value := range v.PerAsset {
			v.Total = v.Total.Add(value)
		}
		v.Total = v.Total.Add(v.Cash)
		slices.Sort(v.Missing)
		valuations = append(valuations, v)
	}

	return valuations, nil
}

// SectorWeight returns the sector's share of total value on that day,
// zero when the total is zero (a degenerate but representable state).
func (v *DailyValuation) SectorWeight(s Sector) Percent {
	if v.Total.IsZero() {
		return 0
	}
	var part Money
	switch s {
	case Cash:
		part = v.Cash
	case FixedIncome:
		part = v.FixedIncome
	default:
		part = v.PerSector[s].Total()
	}
	return Percent(100 * part.AsFloat() / v.Total.AsFloat())
}

// KindWeights returns the sector's ETF and stock weights on that day.
func (v *DailyValuation) KindWeights(s Sector) (etf, stock Percent) {
	if v.Total.IsZero() {
		return 0, 0
	}
	sv := v.PerSector[s]
	total := v.Total.AsFloat()
	return Percent(100 * sv.ETF.AsFloat() / total), Percent(100 * sv.Stock.AsFloat() / total)
}
