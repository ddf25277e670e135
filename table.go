package pricedash

import (
	"encoding/json"
	"iter"
	"math"
	"slices"

	"github.com/etnz/pricedash/date"
)

// PriceTable holds the closing prices of a set of tickers.
//
// It is always addressed as a table of columns, one per ticker, whatever the
// number of tickers. Columns share the date index implicitly: a date missing
// in a column is a gap (non-trading day), never a zero.
type PriceTable struct {
	tickers []string
	columns map[string]*date.History[float64]
}

// NewPriceTable returns an empty table with a column for each ticker, in order.
// Duplicated tickers are ignored.
func NewPriceTable(tickers ...string) *PriceTable {
	t := &PriceTable{columns: make(map[string]*date.History[float64])}
	for _, ticker := range tickers {
		t.column(ticker)
	}
	return t
}

// column returns the column for ticker, creating it if needed.
func (t *PriceTable) column(ticker string) *date.History[float64] {
	if h, ok := t.columns[ticker]; ok {
		return h
	}
	h := new(date.History[float64])
	t.tickers = append(t.tickers, ticker)
	t.columns[ticker] = h
	return h
}

// Append sets the closing price of ticker on a given day.
func (t *PriceTable) Append(ticker string, on date.Date, price float64) *PriceTable {
	t.column(ticker).Append(on, price)
	return t
}

// Tickers returns the tickers of the table in column order.
func (t *PriceTable) Tickers() []string { return slices.Clone(t.tickers) }

// Has reports whether the table has a column for ticker.
func (t *PriceTable) Has(ticker string) bool {
	_, ok := t.columns[ticker]
	return ok
}

// Column returns the closing prices of ticker, or nil if there is no such column.
// The returned History must not be modified.
func (t *PriceTable) Column(ticker string) *date.History[float64] { return t.columns[ticker] }

// Price returns the closing price of ticker on day.
func (t *PriceTable) Price(ticker string, day date.Date) (float64, bool) {
	h, ok := t.columns[ticker]
	if !ok {
		return 0, false
	}
	return h.Get(day)
}

// Width returns the number of columns.
func (t *PriceTable) Width() int { return len(t.tickers) }

// histories returns the columns in order.
func (t *PriceTable) histories() []*date.History[float64] {
	hs := make([]*date.History[float64], 0, len(t.tickers))
	for _, ticker := range t.tickers {
		hs = append(hs, t.columns[ticker])
	}
	return hs
}

// Dates returns the shared date index: every date that has at least one price.
func (t *PriceTable) Dates() []date.Date { return slices.Collect(date.Iterate(t.histories()...)) }

// Len returns the number of rows (distinct dates) of the table.
func (t *PriceTable) Len() int { return len(t.Dates()) }

// Span returns the range from the first to the last date of the table.
// It is the zero Range if the table has no price at all.
func (t *PriceTable) Span() date.Range {
	var span date.Range
	for _, h := range t.columns {
		if h.Len() == 0 {
			continue
		}
		first, _ := h.Earliest()
		last, _ := h.Latest()
		if span.IsZero() || first.Before(span.From) {
			span.From = first
		}
		if span.To.IsZero() || last.After(span.To) {
			span.To = last
		}
	}
	return span
}

// Rows iterates over the table row by row. Values are in column order, a gap is NaN.
func (t *PriceTable) Rows() iter.Seq2[date.Date, []float64] {
	return func(yield func(date.Date, []float64) bool) {
		for _, on := range t.Dates() {
			row := make([]float64, len(t.tickers))
			for i, ticker := range t.tickers {
				v, ok := t.columns[ticker].Get(on)
				if !ok {
					v = math.NaN()
				}
				row[i] = v
			}
			if !yield(on, row) {
				return
			}
		}
	}
}

// Equal reports whether t and x have the same columns, in the same order, with the same prices.
func (t *PriceTable) Equal(x *PriceTable) bool {
	if !slices.Equal(t.tickers, x.tickers) {
		return false
	}
	for _, ticker := range t.tickers {
		if !t.columns[ticker].Equal(x.columns[ticker]) {
			return false
		}
	}
	return true
}

// point is the json form of a closing price.
type point struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

// jsonColumn is the json form of a column.
type jsonColumn struct {
	Ticker string  `json:"ticker"`
	Prices []point `json:"prices"`
}

// MarshalJSON encodes the table as a list of columns.
func (t *PriceTable) MarshalJSON() ([]byte, error) {
	columns := make([]jsonColumn, 0, len(t.tickers))
	for _, ticker := range t.tickers {
		c := jsonColumn{Ticker: ticker, Prices: []point{}}
		for on, v := range t.columns[ticker].Values() {
			c.Prices = append(c.Prices, point{on, v})
		}
		columns = append(columns, c)
	}
	return json.Marshal(columns)
}

// UnmarshalJSON decodes a table encoded by MarshalJSON.
func (t *PriceTable) UnmarshalJSON(data []byte) error {
	var columns []jsonColumn
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}
	*t = *NewPriceTable()
	for _, c := range columns {
		t.column(c.Ticker)
		for _, p := range c.Prices {
			t.Append(c.Ticker, p.Date, p.Close)
		}
	}
	return nil
}
