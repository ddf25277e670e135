package renderer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/pricedash"
)

var (
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	undefinedStyle = lipgloss.NewStyle().Faint(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
)

// styleOf returns the style used to display a return with trend t.
// Neutral returns use the terminal default.
func styleOf(t pricedash.Trend) lipgloss.Style {
	switch t {
	case pricedash.Positive:
		return gainStyle
	case pricedash.Negative:
		return lossStyle
	case pricedash.Undefined:
		return undefinedStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Performance writes the report as colored text: one line per instrument
// and a final line for the whole portfolio.
func Performance(w io.Writer, r *pricedash.Report) error {
	width := len("Portfolio")
	for _, l := range r.Instruments {
		width = max(width, len(l.Label))
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Performance"), r.Range); err != nil {
		return err
	}
	for _, l := range r.Instruments {
		if err := writeLine(w, width, l); err != nil {
			return err
		}
	}
	return writeLine(w, width, r.Portfolio)
}

func writeLine(w io.Writer, width int, l pricedash.ReportLine) error {
	value := l.Value.String()
	if l.Error != "" {
		value = l.Error
	}
	_, err := fmt.Fprintf(w, "%-*s %s  %s -> %s\n",
		width, l.Label,
		styleOf(l.Trend).Render(fmt.Sprintf("%7s", l.Text)),
		l.Initial, value)
	return err
}
