package pricedash

import (
	"github.com/etnz/pricedash/date"
)

// NotAvailable is the text of a return that could not be computed.
const NotAvailable = "n/a"

// ReportLine is a formatted return, ready to be displayed.
type ReportLine struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Trend   Trend  `json:"trend"`
	Initial Money  `json:"initial"`
	Value   Money  `json:"value"`
	Error   string `json:"error,omitempty"`
}

// Report is the formatted performance of a portfolio over a range.
type Report struct {
	Range       date.Range   `json:"range"`
	Instruments []ReportLine `json:"instruments"`
	Portfolio   ReportLine   `json:"portfolio"`
}

// NewReport formats p's returns.
//
// Each return is written as a percentage with one decimal and classified as
// positive, negative or neutral.
func NewReport(p *Portfolio, r date.Range) *Report {
	rep := &Report{
		Range: r,
		Portfolio: ReportLine{
			Label:   "Portfolio",
			Text:    p.Return.String(),
			Trend:   p.Return.Trend(),
			Initial: p.Invested,
			Value:   p.Value,
		},
	}
	for _, e := range p.Entries {
		line := ReportLine{
			Label:   e.Ticker,
			Text:    e.Return.String(),
			Trend:   e.Return.Trend(),
			Initial: e.Initial,
			Value:   e.Value,
		}
		if !e.Defined() {
			line.Text, line.Trend, line.Error = NotAvailable, Undefined, e.Err.Error()
		}
		rep.Instruments = append(rep.Instruments, line)
	}
	return rep
}
