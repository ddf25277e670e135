package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/pricedash"
	"gopkg.in/yaml.v3"
)

const (
	defaultProvider = "yahoo"
	defaultCurrency = "EUR"
	defaultListen   = "localhost:8080"
	eodhdAPIKeyEnv  = "EODHD_API_KEY"
)

// DefaultUniverse is the set of tickers of the dashboard: five Euronext Lisbon equities.
var DefaultUniverse = []string{"GALP.LS", "JMT.LS", "EDP.LS", "BCP.LS", "SEM.LS"}

// Config holds the settings of pdash.
type Config struct {
	Provider    string   `yaml:"provider"`
	EODHDAPIKey string   `yaml:"eodhd_api_key"`
	Tickers     []string `yaml:"tickers"`
	Invest      float64  `yaml:"invest"`
	Currency    string   `yaml:"currency"`
	Listen      string   `yaml:"listen"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if len(c.Tickers) == 0 {
		c.Tickers = append([]string(nil), DefaultUniverse...)
	}
	if c.Invest == 0 {
		c.Invest = pricedash.DefaultInvestment
	}
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Provider == "eodhd" && c.EODHDAPIKey == "" {
		errs = append(errs, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", eodhdAPIKeyEnv))
	}
	if len(c.Tickers) == 0 {
		errs = append(errs, pricedash.ErrNoTickers)
	}
	for _, t := range c.Tickers {
		if t == "" || strings.ContainsAny(t, ", ") {
			errs = append(errs, fmt.Errorf("invalid ticker %q", t))
		}
	}
	if c.Invest <= 0 {
		errs = append(errs, fmt.Errorf("invest must be positive, got %v", c.Invest))
	}
	if !pricedash.ValidCurrency(c.Currency) {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	return errors.Join(errs...)
}

// Investment returns the amount invested in each ticker.
func (c *Config) Investment() pricedash.Money { return pricedash.M(c.Invest, c.Currency) }

// override replaces the settings whose flag was set in fs.
func (c *Config) override(fs *flag.FlagSet) (err error) {
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "provider":
			c.Provider = value
		case "eodhd-api-key":
			c.EODHDAPIKey = value
		case "tickers":
			c.Tickers = splitTickers(value)
		case "invest":
			c.Invest, err = strconv.ParseFloat(value, 64)
		case "currency":
			c.Currency = strings.ToUpper(value)
		}
	})
	return err
}

// splitTickers parses a comma separated list of tickers.
func splitTickers(list string) []string {
	var tickers []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func joinTickers(tickers []string) string { return strings.Join(tickers, ",") }
