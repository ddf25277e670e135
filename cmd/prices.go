package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricedash/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct {
	selectionFlags
	json bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display the closing prices of the selection" }
func (*pricesCmd) Usage() string {
	return `pdash prices [-from <date>] [-to <date>] [-json] [<ticker>...]

  Displays the closing prices of the selected tickers, one row per date.
  No ticker selects every ticker of the universe.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	c.selectionFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the prices as JSON.")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v.Table); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PricesMarkdown(v.Table))
	return subcommands.ExitSuccess
}
