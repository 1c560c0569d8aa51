// Package eodhd fetches daily adjusted close prices from eodhd.com.
//
// It is the production Quotes source: the updater fills a
// smic.PriceTable which is then snapshotted to disk, so that analysis
// runs are reproducible and work offline.
package eodhd

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/smicfund/smic"
)

const apiKeyEnv = "EODHD_API_KEY"

var apiKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key for fetching prices.\n If missing it is read from the environment variable "+apiKeyEnv+". You can get one at https://eodhd.com/")

// APIKey returns the configured API key, flag first, then environment.
func APIKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

// Symbol maps a portfolio ticker to an EODHD symbol. Plain US tickers get
// the ".US" exchange suffix; index tickers like ^GSPC use the INDX
// virtual exchange.
func Symbol(ticker string) string {
	if strings.HasPrefix(ticker, "^") {
		return strings.TrimPrefix(ticker, "^") + ".INDX"
	}
	if strings.Contains(ticker, ".") {
		return ticker // already qualified
	}
	return ticker + ".US"
}

// jwget GETs addr and unmarshals the JSON payload into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchDaily returns the adjusted close series of one ticker inside r.
// The EODHD response bounds are inclusive; a ticker that started trading
// inside the window simply yields a shorter series.
func FetchDaily(apiKey, ticker string, r smic.Range) (*smic.History[float64], error) {
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		Symbol(ticker), apiKey, r.From, r.To)

	type line struct {
		Date          smic.Date `json:"date"`
		AdjustedClose float64   `json:"adjusted_close"`
		Close         float64   `json:"close"`
	}
	content := make([]line, 0)
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", ticker, err)
	}

	hist := &smic.History[float64]{}
	for _, l := range content {
		price := l.AdjustedClose
		if price == 0 {
			price = l.Close
		}
		if price == 0 {
			continue // no usable close for that day
		}
		hist.Append(l.Date, price)
	}
	return hist, nil
}
