package pricedash

import (
	"math"
	"testing"

	"github.com/etnz/pricedash/date"
)

func TestTrendOf(t *testing.T) {
	testCases := []struct {
		v    float64
		want Trend
	}{
		{0, Neutral},
		{math.Copysign(0, -1), Neutral},
		{1e-12, Positive},
		{-1e-12, Negative},
		{0.5, Positive},
		{-0.5, Negative},
		{math.NaN(), Undefined},
	}
	for _, tc := range testCases {
		if got := TrendOf(tc.v); got != tc.want {
			t.Errorf("TrendOf(%v) = %v want %v", tc.v, got, tc.want)
		}
	}
}

func TestReturnString(t *testing.T) {
	testCases := []struct {
		r    Return
		want string
	}{
		{0, "0.0%"},
		{0.123, "12.3%"},
		{-0.5, "-50.0%"},
		{1, "100.0%"},
		{0.0004, "0.0%"},
	}
	for _, tc := range testCases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("Return(%v).String() = %q want %q", float64(tc.r), got, tc.want)
		}
	}
}

func TestNewReport(t *testing.T) {
	tb := table(map[string][]float64{
		"UP":   {10, 15},
		"DOWN": {10, 5},
		"FLAT": {10, 10},
		"ZERO": {0, 10},
	}, "UP", "DOWN", "FLAT", "ZERO")
	r := date.NewRange(jan(1), jan(2))

	rep := NewReport(NewPortfolio(tb, nil, EUR(200)), r)

	want := []struct {
		label, text string
		trend       Trend
	}{
		{"UP", "50.0%", Positive},
		{"DOWN", "-50.0%", Negative},
		{"FLAT", "0.0%", Neutral},
		{"ZERO", NotAvailable, Undefined},
	}
	if len(rep.Instruments) != len(want) {
		t.Fatalf("NewReport() has %d lines want %d", len(rep.Instruments), len(want))
	}
	for i, w := range want {
		got := rep.Instruments[i]
		if got.Label != w.label || got.Text != w.text || got.Trend != w.trend {
			t.Errorf("line %d = %s %s %v want %s %s %v", i, got.Label, got.Text, got.Trend, w.label, w.text, w.trend)
		}
	}
	if rep.Instruments[3].Error == "" {
		t.Errorf("undefined line must carry its error")
	}
	if p := rep.Portfolio; p.Text != "0.0%" || p.Trend != Neutral {
		t.Errorf("portfolio line = %s %v want 0.0%% neutral", p.Text, p.Trend)
	}
	if rep.Range != r {
		t.Errorf("report range = %v want %v", rep.Range, r)
	}
}
