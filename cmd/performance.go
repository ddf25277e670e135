package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricedash/renderer"
	"github.com/google/subcommands"
)

type performanceCmd struct {
	selectionFlags
	markdown bool
}

func (*performanceCmd) Name() string { return "performance" }
func (*performanceCmd) Synopsis() string {
	return "compute the performance of an equal investment in the selection"
}
func (*performanceCmd) Usage() string {
	return `pdash performance [-from <date>] [-to <date>] [-md] [<ticker>...]

  Computes the return of each selected ticker, and of a portfolio investing the
  same amount in each of them, from the first to the last date of the selection.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	c.selectionFlags.SetFlags(f)
	f.BoolVar(&c.markdown, "md", false, "Display the performance as a markdown report.")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.markdown {
		printMarkdown(renderer.RenderPerformance(v.Report))
		return subcommands.ExitSuccess
	}
	if err := renderer.Performance(os.Stdout, v.Report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
