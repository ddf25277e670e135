package pricedash

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/etnz/pricedash/date"
	"github.com/google/go-cmp/cmp"
)

func TestPriceTableColumns(t *testing.T) {
	tb := NewPriceTable("EDP.LS", "GALP.LS", "EDP.LS")
	if diff := cmp.Diff([]string{"EDP.LS", "GALP.LS"}, tb.Tickers()); diff != "" {
		t.Errorf("Tickers() mismatch (-want +got):\n%s", diff)
	}
	tb.Append("NOS.LS", jan(2), 3.5)
	if !tb.Has("NOS.LS") || tb.Width() != 3 {
		t.Errorf("Append() on a new ticker must add a column, got %v", tb.Tickers())
	}
	if p, ok := tb.Price("NOS.LS", jan(2)); !ok || p != 3.5 {
		t.Errorf("Price(NOS.LS, %v) = %v, %v want 3.5, true", jan(2), p, ok)
	}
	if _, ok := tb.Price("BCP.LS", jan(2)); ok {
		t.Errorf("Price() on an unknown ticker must not be found")
	}
}

func TestPriceTableRows(t *testing.T) {
	tb := NewPriceTable("A", "B")
	tb.Append("A", jan(1), 1).Append("A", jan(3), 3)
	tb.Append("B", jan(2), 20).Append("B", jan(3), 30)

	if got := tb.Len(); got != 3 {
		t.Errorf("Len() = %d want 3", got)
	}
	if got, want := tb.Span(), date.NewRange(jan(1), jan(3)); got != want {
		t.Errorf("Span() = %v want %v", got, want)
	}

	var dates []string
	var rows [][]float64
	for on, row := range tb.Rows() {
		dates = append(dates, on.String())
		rows = append(rows, row)
	}
	if diff := cmp.Diff([]string{"2024-01-01", "2024-01-02", "2024-01-03"}, dates); diff != "" {
		t.Errorf("Rows() dates mismatch (-want +got):\n%s", diff)
	}
	want := [][]float64{{1, math.NaN()}, {math.NaN(), 20}, {3, 30}}
	if diff := cmp.Diff(want, rows, cmp.Comparer(func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	})); diff != "" {
		t.Errorf("Rows() values mismatch (-want +got):\n%s", diff)
	}
}

func TestPriceTableEmptySpan(t *testing.T) {
	if span := NewPriceTable("A").Span(); !span.IsZero() {
		t.Errorf("Span() of an empty table = %v want zero", span)
	}
}

func TestPriceTableJSON(t *testing.T) {
	tb := NewPriceTable("A").Append("A", jan(1), 1.5)
	got, err := json.Marshal(tb)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	want := `[{"ticker":"A","prices":[{"date":"2024-01-01","close":1.5}]}]`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s want %s", got, want)
	}
}

func TestPriceTableUnmarshalJSON(t *testing.T) {
	data := `[{"ticker":"B","prices":[]},{"ticker":"A","prices":[{"date":"2024-01-02","close":2},{"date":"2024-01-01","close":1.5}]}]`
	var got PriceTable
	if err := json.Unmarshal([]byte(data), &got); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	want := NewPriceTable("B", "A").Append("A", jan(1), 1.5).Append("A", jan(2), 2)
	if !got.Equal(want) {
		t.Errorf("json.Unmarshal() = %v want %v", got.Tickers(), want.Tickers())
	}
}
