package cmd

import (
	"slices"
	"testing"
)

func TestCompletion(t *testing.T) {
	c := Completion([]string{"EDP.LS", "GALP.LS"})

	for _, cmd := range commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("no completion for command %q", cmd.Name())
		}
	}
	for _, flag := range []string{"config", "provider", "tickers", "invest", "currency", "eodhd-api-key"} {
		if _, ok := c.Flags[flag]; !ok {
			t.Errorf("no completion for global flag -%s", flag)
		}
	}
	if got := c.Flags["provider"].Predict(""); !slices.Contains(got, "eodhd") {
		t.Errorf("-provider predicts %v, want eodhd", got)
	}

	perf := c.Sub["performance"]
	for _, flag := range []string{"from", "to", "md"} {
		if _, ok := perf.Flags[flag]; !ok {
			t.Errorf("no completion for performance flag -%s", flag)
		}
	}
	if got := perf.Args.Predict(""); !slices.Equal(got, []string{"EDP.LS", "GALP.LS"}) {
		t.Errorf("performance args predict %v, want the universe", got)
	}
	if got := c.Sub["topic"].Args.Predict(""); !slices.Contains(got, "dates") {
		t.Errorf("topic args predict %v, want dates", got)
	}
}

func TestHas(t *testing.T) {
	if !Has("serve") {
		t.Error("Has(serve) = false")
	}
	if Has("hello") {
		t.Error("Has(hello) = true")
	}
}
