package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the ticker of the result, in the format expected by Fetch.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for securities by name, code or ISIN.
func (p *Provider) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", p.BaseURL, url.PathEscape(searchTerm), url.QueryEscape(p.APIKey))

	var results []SearchResult
	if err := pricedash.GetJSON(ctx, p.Client, addr, &results); err != nil {
		return nil, fmt.Errorf("eodhd search %q: %w", searchTerm, err)
	}
	return results, nil
}
