package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadAndValidate(t *testing.T) {
	t.Setenv("TEST_EODHD_KEY", "secret")
	path := filepath.Join(t.TempDir(), "pdash.yaml")
	content := `provider: eodhd
eodhd_api_key: ${TEST_EODHD_KEY}
tickers: [EDP.LS, GALP.LS]
currency: USD
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() failed: %v", err)
	}
	want := &Config{
		Provider:    "eodhd",
		EODHDAPIKey: "secret",
		Tickers:     []string{"EDP.LS", "GALP.LS"},
		Invest:      200,
		Currency:    "USD",
		Listen:      defaultListen,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadAndValidate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tickers: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid yaml succeeded")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := new(Config)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	want := []string{"GALP.LS", "JMT.LS", "EDP.LS", "BCP.LS", "SEM.LS"}
	if diff := cmp.Diff(want, cfg.Tickers); diff != "" {
		t.Errorf("default tickers mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Investment().String(); !strings.Contains(got, "200") {
		t.Errorf("default investment = %q, want 200 EUR", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"eodhd without key", func(c *Config) { c.Provider = "eodhd" }, "EODHD API key"},
		{"bad ticker", func(c *Config) { c.Tickers = []string{"EDP.LS,GALP.LS"} }, "invalid ticker"},
		{"negative invest", func(c *Config) { c.Invest = -1 }, "invest must be positive"},
		{"unknown currency", func(c *Config) { c.Currency = "XYZ" }, "unknown currency"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := new(Config)
			cfg.applyDefaults()
			tc.edit(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want an error containing %q", err, tc.want)
			}
		})
	}
}

func TestConfigOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("provider", "yahoo", "")
	fs.String("tickers", "", "")
	fs.Float64("invest", 200, "")
	fs.String("currency", "EUR", "")
	if err := fs.Parse([]string{"-tickers", "EDP.LS, NOS.LS", "-invest", "50", "-currency", "usd"}); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Provider: "eodhd", Tickers: []string{"GALP.LS"}, Currency: "EUR"}
	if err := cfg.override(fs); err != nil {
		t.Fatalf("override() failed: %v", err)
	}
	want := &Config{Provider: "eodhd", Tickers: []string{"EDP.LS", "NOS.LS"}, Invest: 50, Currency: "USD"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("override() mismatch (-want +got):\n%s", diff)
	}
}
