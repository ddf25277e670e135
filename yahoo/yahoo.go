// Package yahoo implements a pricedash.Provider on top of the Yahoo Finance
// chart API.
//
// Tickers are Yahoo symbols, e.g. "EDP.LS" for EDP on Euronext Lisbon.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
)

// DefaultBaseURL is the root of the Yahoo Finance API.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// yahoo rejects requests without a browser-like user agent.
const userAgent = "Mozilla/5.0 (compatible; pdash/1.0)"

// Provider fetches daily closing prices from Yahoo Finance.
type Provider struct {
	BaseURL string
	Client  *http.Client
}

// New returns a Provider against the public Yahoo Finance API.
func New() *Provider {
	client := pricedash.NewClient()
	client.Transport = &agent{client.Transport}
	return &Provider{BaseURL: DefaultBaseURL, Client: client}
}

// agent sets the User-Agent header of every request.
type agent struct{ base http.RoundTripper }

func (a *agent) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return a.base.RoundTrip(req)
}

// interval converts a period to the chart 'interval' parameter.
func interval(p date.Period) string {
	switch p {
	case date.Weekly:
		return "1wk"
	case date.Monthly:
		return "1mo"
	default:
		return "1d"
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

// fetchPrices appends the closing prices of a given symbol to t.
func (p *Provider) fetchPrices(ctx context.Context, t *pricedash.PriceTable, symbol string, period date.Period, r date.Range) error {
	// https://query1.finance.yahoo.com/v8/finance/chart/EDP.LS?period1=1577836800&period2=1730332800&interval=1d
	// {"chart": {"result": [{
	//     "meta": {"currency": "EUR", "symbol": "EDP.LS", "gmtoffset": 0, ...},
	//     "timestamp": [1577952000, ...],
	//     "indicators": {"quote": [{"open": [...], "close": [4.452, null, ...], ...}]}
	// }], "error": null}}
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(r.From.Unix(), 10))
	// period2 is exclusive.
	q.Set("period2", strconv.FormatInt(r.To.Add(1).Unix(), 10))
	q.Set("interval", interval(period))
	q.Set("events", "history")
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.BaseURL, url.PathEscape(symbol), q.Encode())

	var jobj any
	if err := pricedash.GetJSON(ctx, p.Client, addr, &jobj); err != nil {
		var status *pricedash.StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			return fmt.Errorf("yahoo %s: %w", symbol, pricedash.ErrUnknownTicker)
		}
		return fmt.Errorf("yahoo %s: %w", symbol, err)
	}

	days, closes, err := series(jobj)
	if err != nil {
		return fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	if len(days) == 0 {
		return fmt.Errorf("yahoo %s: %w", symbol, pricedash.ErrUnknownTicker)
	}
	for i, on := range days {
		// null closes are days without trading.
		if c, ok := closes[i].(float64); ok {
			t.Append(symbol, on, c)
		}
	}
	return nil
}

// series extracts the trading days and the closes of a chart payload.
func series(jobj any) (days []date.Date, closes []any, err error) {
	if e, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && e != nil {
		return nil, nil, fmt.Errorf("%v", e)
	}
	jts, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		// no trading in the range.
		return nil, nil, nil
	}
	timestamps, ok := jts.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("invalid timestamp list %T", jts)
	}
	jcl, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, nil, fmt.Errorf("missing closes: %w", err)
	}
	closes, ok = jcl.([]any)
	if !ok || len(closes) != len(timestamps) {
		return nil, nil, fmt.Errorf("closes do not match timestamps")
	}
	// timestamps are in UTC, the trading day is the one of the exchange.
	var offset float64
	if jo, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", jobj); err == nil {
		offset, _ = jo.(float64)
	}
	loc := time.FixedZone("exchange", int(offset))
	for _, jt := range timestamps {
		ts, ok := jt.(float64)
		if !ok {
			return nil, nil, fmt.Errorf("invalid timestamp %v", jt)
		}
		days = append(days, date.FromTime(time.Unix(int64(ts), 0).In(loc)))
	}
	return days, closes, nil
}
