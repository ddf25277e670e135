package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
)

func jan(d int) date.Date { return date.New(2024, 1, d) }

// lisbon returns a provider of three tickers over three days, or err.
func lisbon(err error) pricedash.Provider {
	return pricedash.ProviderFunc(func(ctx context.Context, req pricedash.Request) (*pricedash.PriceTable, error) {
		if err != nil {
			return nil, err
		}
		t := pricedash.NewPriceTable(req.Tickers...)
		t.Append("EDP.LS", jan(2), 4).Append("EDP.LS", jan(3), 4.2).Append("EDP.LS", jan(4), 5)
		t.Append("GALP.LS", jan(2), 10).Append("GALP.LS", jan(4), 8)
		t.Append("NOS.LS", jan(3), 3.5).Append("NOS.LS", jan(4), 3.5)
		return t, nil
	})
}

var errOffline = errors.New("offline")

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{Tickers: []string{"EDP.LS", "GALP.LS", "NOS.LS"}}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}
