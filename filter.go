package pricedash

import (
	"slices"

	"github.com/etnz/pricedash/date"
)

// Selection is a user choice of tickers and dates.
//
// An empty Tickers list means all the tickers, a zero Range means all the dates.
type Selection struct {
	Tickers []string   `json:"tickers"`
	Range   date.Range `json:"range"`
}

// Resolve returns the explicit selection s stands for in t.
//
// Tickers are the ones of t that are selected, in t's column order. When
// none is (empty selection or only unknown tickers), all of t's tickers are.
// A zero Range is replaced by t's span, a missing bound by the span's bound,
// and a reversed range is swapped.
func (s Selection) Resolve(t *PriceTable) Selection {
	var tickers []string
	for _, ticker := range t.tickers {
		if slices.Contains(s.Tickers, ticker) {
			tickers = append(tickers, ticker)
		}
	}
	if len(tickers) == 0 {
		tickers = t.Tickers()
	}
	r, span := s.Range, t.Span()
	if r.From.IsZero() {
		r.From = span.From
	}
	if r.To.IsZero() {
		r.To = span.To
	}
	r = date.NewRange(r.From, r.To)
	return Selection{Tickers: tickers, Range: r}
}

// Filter returns a new table with the columns and the rows of t that are in s.
//
// The result is always a multi-column table, possibly with a single column,
// possibly without rows. t is left untouched.
func Filter(t *PriceTable, s Selection) *PriceTable {
	s = s.Resolve(t)
	res := NewPriceTable(s.Tickers...)
	for _, ticker := range s.Tickers {
		res.columns[ticker] = t.columns[ticker].Between(s.Range)
	}
	return res
}
