package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/etnz/pricedash"
	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no prices to plot")

// Format is an image format for charts.
type Format int

const (
	PNG Format = iota
	SVG
)

// ContentType returns the MIME type of images in format f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// ChartSize is the default size of charts, in pixels.
var ChartSize = struct{ Width, Height int }{Width: 960, Height: 480}

// Chart plots the closing prices of t as a line chart, one line per ticker.
func Chart(w io.Writer, t *pricedash.PriceTable, f Format) error {
	var series []chart.Series
	low, high := math.Inf(1), math.Inf(-1)
	for i, ticker := range t.Tickers() {
		h := t.Column(ticker)
		if h.Len() == 0 {
			continue
		}
		var xs []time.Time
		var ys []float64
		for day, price := range h.Values() {
			xs = append(xs, day.Time())
			ys = append(ys, price)
			low, high = min(low, price), max(high, price)
		}
		if len(xs) == 1 {
			// a line needs two points
			xs = append(xs, xs[0].AddDate(0, 0, 1))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    ticker,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}
	if low == high {
		low, high = low-1, high+1
	}

	span := t.Span()
	ch := chart.Chart{
		Title:      fmt.Sprintf("Closing prices %s", span),
		Width:      ChartSize.Width,
		Height:     ChartSize.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: low, Max: high}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(f.provider(), w); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}
	return nil
}
