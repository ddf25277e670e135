package pricedash

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/pricedash/date"
	"golang.org/x/sync/singleflight"
)

// Window is the historical window loaded for every ticker.
var Window = date.NewRange(date.New(2020, 1, 1), date.New(2024, 10, 30))

// ErrNoTickers is returned when loading an empty set of tickers.
var ErrNoTickers = errors.New("no tickers")

// Request is a query to a market data provider.
type Request struct {
	Tickers []string    `json:"tickers"`
	Period  date.Period `json:"period"`
	Range   date.Range  `json:"range"`
}

// Provider is a source of historical closing prices.
type Provider interface {
	// Fetch returns the closing prices of every requested ticker within the range.
	// It fails if any ticker is unknown.
	Fetch(ctx context.Context, req Request) (*PriceTable, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, req Request) (*PriceTable, error)

func (f ProviderFunc) Fetch(ctx context.Context, req Request) (*PriceTable, error) { return f(ctx, req) }

// Loader loads price tables from a Provider and memoizes them for its whole lifetime.
//
// Tables are keyed by the set of tickers, so the order of the tickers does
// not matter. A Loader is safe for concurrent use, concurrent loads of the
// same set are served by a single provider call. Loaded tables are shared
// and must not be modified.
type Loader struct {
	provider Provider
	window   date.Range
	period   date.Period

	mu    sync.RWMutex
	memo  map[string]*PriceTable
	group singleflight.Group
}

// NewLoader returns a Loader fetching daily closing prices within window.
func NewLoader(p Provider, window date.Range) *Loader {
	return &Loader{
		provider: p,
		window:   window,
		period:   date.Daily,
		memo:     make(map[string]*PriceTable),
	}
}

// Window returns the range of dates loaded.
func (l *Loader) Window() date.Range { return l.window }

// Key returns the canonical key of a set of tickers.
func Key(tickers ...string) string {
	set := slices.Clone(tickers)
	slices.Sort(set)
	return strings.Join(slices.Compact(set), ",")
}

// Load returns the closing prices of tickers.
//
// Provider errors are returned as is (wrapped), and are not memoized: the
// next Load tries again. Cancelling ctx returns early but does not stop a
// fetch other callers are waiting for.
func (l *Loader) Load(ctx context.Context, tickers ...string) (*PriceTable, error) {
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	key := Key(tickers...)

	l.mu.RLock()
	t, ok := l.memo[key]
	l.mu.RUnlock()
	if ok {
		return t, nil
	}

	// The flight outlives the caller that started it: other callers may be
	// waiting on it, each one gives up on its own context.
	flight := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		// another call may have completed in between.
		l.mu.RLock()
		t, ok := l.memo[key]
		l.mu.RUnlock()
		if ok {
			return t, nil
		}
		t, err := l.fetch(flight, strings.Split(key, ","))
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.memo[key] = t
		l.mu.Unlock()
		log.Printf("load-prices tickers=%q rows=%d", key, t.Len())
		return t, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*PriceTable), nil
	}
}

// fetch gets tickers from the provider and checks the response.
func (l *Loader) fetch(ctx context.Context, tickers []string) (*PriceTable, error) {
	req := Request{Tickers: tickers, Period: l.period, Range: l.window}
	t, err := l.provider.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", strings.Join(tickers, ", "), err)
	}
	// keep only what was asked for, in the asked order.
	res := NewPriceTable(tickers...)
	for _, ticker := range tickers {
		h := t.Column(ticker)
		if h == nil || h.Len() == 0 {
			return nil, fmt.Errorf("fetching %s: %w %q: no prices", strings.Join(tickers, ", "), ErrUnknownTicker, ticker)
		}
		res.columns[ticker] = h.Between(l.window)
	}
	return res, nil
}

// Invalidate forgets the table memoized for tickers.
func (l *Loader) Invalidate(tickers ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.memo, Key(tickers...))
}

// Len returns the number of memoized tables.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.memo)
}
