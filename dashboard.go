package pricedash

import (
	"context"
	"slices"

	"github.com/etnz/pricedash/date"
)

// DefaultInvestment is the amount invested in each instrument, in major units.
const DefaultInvestment = 200

// View is the outcome of a dashboard run: everything there is to display.
type View struct {
	Universe  []string    `json:"universe"`
	Span      date.Range  `json:"span"`      // bounds of the date selection
	Selection Selection   `json:"selection"` // resolved selection
	Table     *PriceTable `json:"table"`     // filtered prices
	Portfolio *Portfolio  `json:"portfolio"`
	Report    *Report     `json:"report"`
}

// Dashboard owns the user's Selection and re-runs the whole flow
// (load, filter, compute, report) whenever the Selection changes.
//
// A Dashboard is meant to be driven by a single user and is not safe for
// concurrent use. Dashboards can share a Loader.
type Dashboard struct {
	loader    *Loader
	universe  []string
	initial   Money
	selection Selection
	last      *View
}

// NewDashboard returns a dashboard over a fixed universe of tickers,
// investing initial in each selected ticker.
func NewDashboard(loader *Loader, universe []string, initial Money) *Dashboard {
	return &Dashboard{
		loader:   loader,
		universe: slices.Clone(universe),
		initial:  initial,
	}
}

// Universe returns the tickers that can be selected.
func (d *Dashboard) Universe() []string { return slices.Clone(d.universe) }

// Selection returns the current selection, as set by the user.
func (d *Dashboard) Selection() Selection { return d.selection }

// Select replaces the selected tickers and re-runs the dashboard.
// Tickers outside the universe are ignored, selecting none means all.
func (d *Dashboard) Select(ctx context.Context, tickers ...string) (*View, error) {
	return d.Apply(ctx, Selection{Tickers: tickers, Range: d.selection.Range})
}

// Apply replaces the whole selection and re-runs the dashboard.
func (d *Dashboard) Apply(ctx context.Context, s Selection) (*View, error) {
	var selected []string
	for _, ticker := range s.Tickers {
		if slices.Contains(d.universe, ticker) && !slices.Contains(selected, ticker) {
			selected = append(selected, ticker)
		}
	}
	return d.update(ctx, Selection{Tickers: selected, Range: s.Range})
}

// SetRange replaces the selected dates and re-runs the dashboard.
// The range is clamped within the loaded span, a zero range means all dates.
func (d *Dashboard) SetRange(ctx context.Context, r date.Range) (*View, error) {
	return d.update(ctx, Selection{Tickers: d.selection.Tickers, Range: r})
}

// Reset clears the selection and re-runs the dashboard.
func (d *Dashboard) Reset(ctx context.Context) (*View, error) {
	return d.update(ctx, Selection{})
}

// Run returns the view of the current selection.
func (d *Dashboard) Run(ctx context.Context) (*View, error) {
	if d.last != nil {
		return d.last, nil
	}
	return d.update(ctx, d.selection)
}

func (d *Dashboard) update(ctx context.Context, s Selection) (*View, error) {
	if d.last != nil && equalSelection(s, d.selection) {
		return d.last, nil
	}
	v, err := d.run(ctx, s)
	if err != nil {
		return nil, err
	}
	d.selection, d.last = s, v
	return v, nil
}

// run executes the flow for s.
func (d *Dashboard) run(ctx context.Context, s Selection) (*View, error) {
	table, err := d.loader.Load(ctx, d.universe...)
	if err != nil {
		return nil, err
	}
	span := table.Span()
	s = s.Resolve(table)
	if !span.IsZero() {
		s.Range = s.Range.Clamp(span)
	}
	filtered := Filter(table, s)
	p := NewPortfolio(filtered, s.Tickers, d.initial)
	return &View{
		Universe:  table.Tickers(),
		Span:      span,
		Selection: s,
		Table:     filtered,
		Portfolio: p,
		Report:    NewReport(p, s.Range),
	}, nil
}

func equalSelection(a, b Selection) bool {
	return a.Range == b.Range && slices.Equal(a.Tickers, b.Tickers)
}
