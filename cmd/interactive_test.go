package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/pricedash"
)

func runREPL(t *testing.T, provider pricedash.Provider, input string) string {
	t.Helper()
	cfg := testConfig(t)
	d := newDashboard(cfg, pricedash.NewLoader(provider, pricedash.Window))
	var out strings.Builder
	if err := newREPL(d, &out, strings.NewReader(input)).Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return out.String()
}

// sections splits the output of a session by prompt.
func sections(out string) []string { return strings.Split(out, replPrompt) }

func TestREPL(t *testing.T) {
	out := runREPL(t, lisbon(nil), strings.Join([]string{
		"select GALP.LS",
		"range 2024-01-03",
		"reset",
		"universe",
		"quit",
		"show", // never executed
	}, "\n"))

	got := sections(out)
	if len(got) != 6 {
		t.Fatalf("got %d sections, want 6:\n%s", len(got), out)
	}
	checks := []struct {
		section int
		want    []string
	}{
		{0, []string{"Selection: EDP.LS, GALP.LS, NOS.LS", "Portfolio"}},
		{1, []string{"Selection: GALP.LS", "-20.0%"}},
		{2, []string{"Selection: GALP.LS", "2024-01-03..2024-01-04", "0.0%"}},
		{3, []string{"Selection: EDP.LS, GALP.LS, NOS.LS", "2024-01-02..2024-01-04"}},
		{4, []string{"Tickers: EDP.LS, GALP.LS, NOS.LS", "Dates: 2024-01-02..2024-01-04"}},
	}
	for _, c := range checks {
		for _, want := range c.want {
			if !strings.Contains(got[c.section], want) {
				t.Errorf("section %d does not contain %q:\n%s", c.section, want, got[c.section])
			}
		}
	}
	if got[5] != "" {
		t.Errorf("output after quit: %q", got[5])
	}
}

func TestREPL_Errors(t *testing.T) {
	out := runREPL(t, lisbon(nil), "frobnicate\nrange 2024-13-01\nrange a b c\n")
	for _, want := range []string{
		`Error: unknown command "frobnicate"`,
		"Error: invalid first date",
		"Error: range takes at most two dates",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestREPL_ProviderError(t *testing.T) {
	out := runREPL(t, lisbon(errOffline), "show\n")
	if n := strings.Count(out, "Error: "); n != 2 {
		t.Errorf("got %d errors, want one for the first view and one for show:\n%s", n, out)
	}
}

func TestREPL_Chart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prices.svg")
	out := runREPL(t, lisbon(nil), "prices\nchart "+file+"\nchart prices.gif\n")
	for _, want := range []string{
		"2024-01-02",
		"Chart written to " + file,
		"Error: unsupported image format",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}
