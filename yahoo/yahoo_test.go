package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
)

const edpChart = `{"chart":{"result":[{
	"meta":{"currency":"EUR","symbol":"EDP.LS","gmtoffset":3600},
	"timestamp":[1577952000,1578038400,1578297600],
	"indicators":{"quote":[{"close":[4.452,null,4.5],"open":[4.4,4.41,4.46]}]}
}],"error":null}}`

const notFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		switch r.URL.Path {
		case "/v8/finance/chart/EDP.LS":
			q := r.URL.Query()
			if q.Get("interval") != "1d" || q.Get("period1") != "1577836800" || q.Get("period2") != "1730332800" {
				t.Errorf("unexpected query %v", q)
			}
			w.Write([]byte(edpChart))
		case "/v8/finance/chart/EMPTY.LS":
			w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"EMPTY.LS"},"indicators":{"quote":[{}]}}],"error":null}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(notFound))
		}
	}))
}

func newTestProvider(srv *httptest.Server) *Provider {
	p := New()
	p.BaseURL = srv.URL
	return p
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	tb, err := newTestProvider(srv).Fetch(context.Background(), pricedash.Request{
		Tickers: []string{"EDP.LS"},
		Period:  date.Daily,
		Range:   pricedash.Window,
	})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	h := tb.Column("EDP.LS")
	// the null close is skipped.
	if h.Len() != 2 {
		t.Fatalf("Fetch() returned %d prices want 2", h.Len())
	}
	if p, ok := tb.Price("EDP.LS", date.New(2020, 1, 2)); !ok || p != 4.452 {
		t.Errorf("close on 2020-01-02 = %v, %v want 4.452", p, ok)
	}
	if p, ok := tb.Price("EDP.LS", date.New(2020, 1, 6)); !ok || p != 4.5 {
		t.Errorf("close on 2020-01-06 = %v, %v want 4.5", p, ok)
	}
}

func TestFetchUnknown(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	for _, symbol := range []string{"NOPE.LS", "EMPTY.LS"} {
		_, err := newTestProvider(srv).Fetch(context.Background(), pricedash.Request{
			Tickers: []string{symbol},
			Range:   pricedash.Window,
		})
		if !errors.Is(err, pricedash.ErrUnknownTicker) {
			t.Errorf("Fetch(%s) error = %v want %v", symbol, err, pricedash.ErrUnknownTicker)
		}
	}
}

func TestSeriesError(t *testing.T) {
	var jobj any = map[string]any{
		"chart": map[string]any{
			"result": nil,
			"error":  map[string]any{"code": "Bad Request", "description": "Invalid input"},
		},
	}
	if _, _, err := series(jobj); err == nil {
		t.Errorf("series() with a chart error must fail")
	}
}
