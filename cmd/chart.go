package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	selectionFlags
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "plot the closing prices of the selection" }
func (*chartCmd) Usage() string {
	return `pdash chart [-from <date>] [-to <date>] [-o <file>] [<ticker>...]

  Plots the closing prices of the selected tickers as a line chart, one line
  per ticker. The image format is given by the extension of the output file,
  .png or .svg.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.selectionFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "prices.png", "Output file, .png or .svg.")
}

// formatOf returns the chart format for a file name.
func formatOf(name string) (renderer.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return renderer.PNG, nil
	case ".svg":
		return renderer.SVG, nil
	default:
		return renderer.PNG, fmt.Errorf("unsupported image format %q, want .png or .svg", ext)
	}
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := formatOf(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := c.selection(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	d := openDashboard()
	if d == nil {
		return subcommands.ExitFailure
	}
	v, err := d.Apply(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeChart(c.output, v.Table, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Chart of %s written to %s\n", strings.Join(v.Selection.Tickers, ", "), c.output)
	return subcommands.ExitSuccess
}

// writeChart writes the chart of t to the file name.
func writeChart(name string, t *pricedash.PriceTable, format renderer.Format) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := renderer.Chart(out, t, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
