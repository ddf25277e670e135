// Package eodhd implements a pricedash.Provider on top of the EOD Historical
// Data API (https://eodhd.com).
//
// Tickers use EODHD's "SYMBOL.EXCHANGE" format, e.g. "EDP.LS" for EDP on
// Euronext Lisbon.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Provider fetches end of day closing prices from EODHD.
type Provider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// New returns a Provider using apiKey against the public EODHD API.
func New(apiKey string) *Provider {
	return &Provider{APIKey: apiKey, BaseURL: DefaultBaseURL, Client: pricedash.NewClient()}
}

// eodPeriod converts a period to the EODHD 'period' parameter.
func eodPeriod(p date.Period) string {
	switch p {
	case date.Weekly:
		return "w"
	case date.Monthly:
		return "m"
	default:
		return "d"
	}
}

// Fetch implements pricedash.Provider. Tickers are fetched one at a time,
// the first failure aborts the whole request.
func (p *Provider) Fetch(ctx context.Context, req pricedash.Request) (*pricedash.PriceTable, error) {
	t := pricedash.NewPriceTable(req.Tickers...)
	for _, ticker := range req.Tickers {
		if err := p.fetchPrices(ctx, t, ticker, req.Period, req.Range); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// fetchPrices appends the closing prices of a given EODHD ticker to t.
func (p *Provider) fetchPrices(ctx context.Context, t *pricedash.PriceTable, ticker string, period date.Period, r date.Range) error {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	//
	// bounds are included in the response.
	q := url.Values{}
	q.Set("api_token", p.APIKey)
	q.Set("fmt", "json")
	q.Set("period", eodPeriod(period))
	q.Set("from", r.From.String())
	q.Set("to", r.To.String())
	addr := fmt.Sprintf("%s/eod/%s?%s", p.BaseURL, url.PathEscape(ticker), q.Encode())

	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := pricedash.GetJSON(ctx, p.Client, addr, &content); err != nil {
		return fmt.Errorf("eodhd %s: %w", ticker, err)
	}
	if len(content) == 0 {
		return fmt.Errorf("eodhd %s: %w", ticker, pricedash.ErrUnknownTicker)
	}
	for _, info := range content {
		t.Append(ticker, info.Date, info.Close.InexactFloat64())
	}
	return nil
}
