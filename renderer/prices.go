package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/etnz/pricedash"
	md "github.com/nao1215/markdown"
)

// PricesMarkdown renders the closing prices of t as a markdown table, one
// row per date and one column per ticker. Gaps are left blank.
func PricesMarkdown(t *pricedash.PriceTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	span := t.Span()
	if span.IsZero() {
		doc.H1("Closing prices")
		doc.PlainText("No prices in the selection.")
		return doc.String()
	}
	doc.H1(fmt.Sprintf("Closing prices from %s to %s", span.From, span.To))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Date"},
		Rows:      [][]string{},
	}
	for _, ticker := range t.Tickers() {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, ticker)
	}
	for day, prices := range t.Rows() {
		row := []string{day.String()}
		for _, p := range prices {
			row = append(row, formatPrice(p))
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}

func formatPrice(p float64) string {
	if math.IsNaN(p) {
		return ""
	}
	return strconv.FormatFloat(p, 'f', 4, 64)
}
