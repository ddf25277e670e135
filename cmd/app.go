// Package cmd implements the pdash command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/eodhd"
	"github.com/etnz/pricedash/yahoo"
	"github.com/google/subcommands"
)

// command is a subcommand and the group it is listed in.
type command struct {
	subcommands.Command
	group string
}

var commands = []command{
	{&pricesCmd{}, "dashboard"},
	{&chartCmd{}, "dashboard"},
	{&performanceCmd{}, "dashboard"},
	{&interactiveCmd{}, "dashboard"},
	{&serveCmd{}, "dashboard"},
	{&assistCmd{}, "dashboard"},
	{&searchCmd{}, "tickers"},
	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range commands {
		c.Register(cmd.Command, cmd.group)
	}
}

// Has reports whether name is a registered subcommand.
func Has(name string) bool {
	return slices.ContainsFunc(commands, func(c command) bool { return c.Name() == name })
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "", "Path to a YAML configuration file. Flags take precedence over the file.")
	providerName = flag.String("provider", defaultProvider, "Price provider: yahoo, eodhd, or the name of a pdash-fetch-<name> extension.")
	eodhdAPIKey  = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhdAPIKeyEnv+" environment variable. You can get one at https://eodhd.com/")
	tickers      = flag.String("tickers", joinTickers(DefaultUniverse), "Comma separated list of tickers of the dashboard.")
	invest       = flag.Float64("invest", pricedash.DefaultInvestment, "Amount invested in each selected ticker.")
	currency     = flag.String("currency", defaultCurrency, "Currency of the invested amount.")
)

// currentConfig returns the configuration of this run: defaults, then the
// configuration file, then the flags set on the command line.
func currentConfig() (*Config, error) {
	cfg := new(Config)
	if *configFile != "" {
		var err error
		if cfg, err = Load(*configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.override(flag.CommandLine); err != nil {
		return nil, err
	}
	if cfg.EODHDAPIKey == "" {
		cfg.EODHDAPIKey = os.Getenv(eodhdAPIKeyEnv)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newProvider returns the price provider configured in cfg.
func newProvider(cfg *Config) (pricedash.Provider, error) {
	switch cfg.Provider {
	case "yahoo":
		return yahoo.New(), nil
	case "eodhd":
		return eodhd.New(cfg.EODHDAPIKey), nil
	default:
		return newExternalProvider(cfg.Provider)
	}
}

// newLoader returns a Loader over the configured provider.
func newLoader(cfg *Config) (*pricedash.Loader, error) {
	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	return pricedash.NewLoader(p, pricedash.Window), nil
}

// newDashboard returns a dashboard over the configured universe.
func newDashboard(cfg *Config, loader *pricedash.Loader) *pricedash.Dashboard {
	return pricedash.NewDashboard(loader, cfg.Tickers, cfg.Investment())
}

// openDashboard reads the configuration and returns a new dashboard, or
// prints the error and returns nil.
func openDashboard() *pricedash.Dashboard {
	cfg, err := currentConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil
	}
	loader, err := newLoader(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil
	}
	return newDashboard(cfg, loader)
}

// printMarkdown renders md for the terminal, falling back to the raw markdown.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
