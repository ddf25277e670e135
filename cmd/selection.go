package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
)

// selectionFlags are the flags selecting tickers and dates, shared by the one-shot commands.
type selectionFlags struct {
	from string
	to   string
}

func (s *selectionFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.from, "from", "", "First date of the selection. Defaults to the first date with prices. See 'pdash topic dates'.")
	f.StringVar(&s.to, "to", "", "Last date of the selection. Defaults to the last date with prices.")
}

// selection returns the selection of tickers and the -from and -to dates.
func (s *selectionFlags) selection(tickers []string) (pricedash.Selection, error) {
	r, err := parseRange(s.from, s.to)
	if err != nil {
		return pricedash.Selection{}, err
	}
	return pricedash.Selection{Tickers: tickers, Range: r}, nil
}

// parseRange parses a range of dates, an empty bound being the edge of the loaded window.
// Both bounds empty is the zero Range.
func parseRange(from, to string) (date.Range, error) {
	if from == "" && to == "" {
		return date.Range{}, nil
	}
	r := pricedash.Window
	if from != "" {
		d, err := date.Parse(from)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid first date: %w", err)
		}
		r.From = d
	}
	if to != "" {
		d, err := date.Parse(to)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid last date: %w", err)
		}
		r.To = d
	}
	return date.NewRange(r.From, r.To), nil
}
