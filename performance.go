package pricedash

import (
	"errors"
	"fmt"

	"github.com/etnz/pricedash/date"
	"github.com/shopspring/decimal"
)

// ErrZeroPrice is the error marker of a return that cannot be computed
// because the starting price is zero.
var ErrZeroPrice = errors.New("zero starting price")

// ErrUnknownTicker is returned when a ticker has no prices.
var ErrUnknownTicker = errors.New("unknown ticker")

// TotalReturn returns the buy-and-hold return of a price series:
// the last price over the first price, minus one.
//
// A series with less than two prices has a return of exactly 0.
func TotalReturn(h *date.History[float64]) (Return, error) {
	if h.Len() < 2 {
		return 0, nil
	}
	_, first := h.Earliest()
	_, last := h.Latest()
	if first == 0 {
		return 0, ErrZeroPrice
	}
	return Return(last/first - 1), nil
}

// PortfolioEntry is the outcome of investing Initial in a single ticker.
type PortfolioEntry struct {
	Ticker  string `json:"ticker"`
	Initial Money  `json:"initial"`
	Return  Return `json:"return"`
	Value   Money  `json:"value"`
	Err     error  `json:"-"`
}

// Defined reports whether the entry's return could be computed.
func (e PortfolioEntry) Defined() bool { return e.Err == nil }

// Portfolio is a hypothetical buy-and-hold portfolio where every ticker
// receives the same initial investment.
type Portfolio struct {
	Entries  []PortfolioEntry `json:"entries"`
	Invested Money            `json:"invested"`
	Value    Money            `json:"value"`
	Return   Return           `json:"return"`
}

// NewPortfolio computes the portfolio investing initial in each ticker at
// the first date of t and holding it until the last date of t.
//
// If tickers is empty, all t's tickers are used. Entries whose return is
// undefined carry an error and are left out of the aggregate.
func NewPortfolio(t *PriceTable, tickers []string, initial Money) *Portfolio {
	if len(tickers) == 0 {
		tickers = t.Tickers()
	}
	zero := M(0, initial.Currency())
	p := &Portfolio{Invested: zero, Value: zero}
	for _, ticker := range tickers {
		e := PortfolioEntry{Ticker: ticker, Initial: initial, Value: zero}
		h := t.Column(ticker)
		if h == nil {
			e.Err = fmt.Errorf("%w %q", ErrUnknownTicker, ticker)
		} else {
			e.Return, e.Err = TotalReturn(h)
		}
		if e.Err == nil {
			e.Value = initial.Scale(decimal.NewFromFloat(1 + float64(e.Return)))
			p.Invested = p.Invested.Add(initial)
			p.Value = p.Value.Add(e.Value)
		}
		p.Entries = append(p.Entries, e)
	}
	if !p.Invested.IsZero() {
		p.Return = Return(p.Value.Ratio(p.Invested).Sub(decimal.NewFromInt(1)).InexactFloat64())
	}
	return p
}
