package pricedash

import (
	"context"
	"sync/atomic"

	"github.com/etnz/pricedash/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// jan is a helper for test to create dates in January 2024.
func jan(d int) date.Date { return date.New(2024, 1, d) }

// table builds a PriceTable from columns of prices on consecutive days of January 2024.
func table(columns map[string][]float64, order ...string) *PriceTable {
	t := NewPriceTable(order...)
	for _, ticker := range order {
		for i, v := range columns[ticker] {
			t.Append(ticker, jan(1+i), v)
		}
	}
	return t
}

// fakeProvider serves prices from a fixed table and counts the calls.
type fakeProvider struct {
	prices *PriceTable
	err    error
	calls  atomic.Int32
	// block, if not nil, is received from before answering.
	block chan struct{}
	// started, if not nil, is sent to when a fetch starts.
	started chan struct{}
}

func (f *fakeProvider) Fetch(ctx context.Context, req Request) (*PriceTable, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	res := NewPriceTable()
	for _, ticker := range req.Tickers {
		h := f.prices.Column(ticker)
		if h == nil {
			continue
		}
		for on, v := range h.Values() {
			if req.Range.Contains(on) {
				res.Append(ticker, on, v)
			}
		}
	}
	return res, nil
}
