package eodhd

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smicfund/smic"
)

// fetchParallelism bounds concurrent EODHD calls; the free tier throttles
// aggressively beyond a handful of connections.
const fetchParallelism = 4

// Update fetches the daily series of every ticker and merges them into
// the table. Per-ticker fetches are independent and run in parallel; all
// results are fully collected before Update returns, so the valuation
// walk never observes a partially filled table.
func Update(ctx context.Context, apiKey string, table *smic.PriceTable, tickers []string, r smic.Range) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)

	var mu sync.Mutex
	for _, ticker := range tickers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hist, err := FetchDaily(apiKey, ticker, r)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			table.Merge(ticker, hist)
			return nil
		})
	}
	return g.Wait()
}
