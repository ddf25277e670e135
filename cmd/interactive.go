package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/renderer"
	"github.com/google/subcommands"
)

type interactiveCmd struct{}

func (*interactiveCmd) Name() string     { return "interactive" }
func (*interactiveCmd) Synopsis() string { return "explore the dashboard interactively" }
func (*interactiveCmd) Usage() string {
	return `pdash interactive

  Starts an interactive session to change the selection of tickers and dates.
  Every change of the selection displays the updated performance.
` + replHelp
}

func (*interactiveCmd) SetFlags(_ *flag.FlagSet) {}

func (c *interactiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d := openDashboard()
	if d == nil {
		return subcommands.ExitFailure
	}
	r := newREPL(d, os.Stdout, os.Stdin)
	if err := r.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const replHelp = `
Commands:
  select [<ticker>...]   select tickers, none selects all
  range [<from> [<to>]]  select dates, none selects all
  reset                  select everything
  show                   display the performance
  prices                 display the closing prices
  chart [<file>]         write the chart to a .png or .svg file
  universe               display the tickers and dates available
  help                   display this help
  quit                   exit
`

// repl drives a Dashboard from text commands.
type repl struct {
	d *pricedash.Dashboard
	w io.Writer
	r *bufio.Reader
}

func newREPL(d *pricedash.Dashboard, w io.Writer, r io.Reader) *repl {
	return &repl{d: d, w: w, r: bufio.NewReader(r)}
}

const replPrompt = "pdash> "

// Run reads and executes commands until quit or the end of the input.
func (r *repl) Run(ctx context.Context) error {
	fmt.Fprintln(r.w, "Welcome to pdash interactive. Type 'help' for help, 'quit' to exit.")
	r.exec(ctx, []string{"show"})
	for {
		fmt.Fprint(r.w, replPrompt)
		input, err := r.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		fields := strings.Fields(input)
		if len(fields) > 0 && r.exec(ctx, fields) {
			return nil
		}
		if err == io.EOF {
			fmt.Fprintln(r.w)
			return nil // Clean exit on Ctrl+D
		}
	}
}

// exec executes a single command. It returns true to quit.
func (r *repl) exec(ctx context.Context, fields []string) (quit bool) {
	name, args := strings.ToLower(fields[0]), fields[1:]
	var (
		v   *pricedash.View
		err error
	)
	switch name {
	case "quit", "exit", "bye":
		return true
	case "help":
		fmt.Fprint(r.w, replHelp)
		return false
	case "select":
		v, err = r.d.Select(ctx, args...)
	case "range":
		if len(args) > 2 {
			err = fmt.Errorf("range takes at most two dates")
			break
		}
		args = append(args, "", "")
		rg, perr := parseRange(args[0], args[1])
		if perr != nil {
			err = perr
			break
		}
		v, err = r.d.SetRange(ctx, rg)
	case "reset":
		v, err = r.d.Reset(ctx)
	case "show", "prices", "chart", "universe":
		v, err = r.d.Run(ctx)
	default:
		err = fmt.Errorf("unknown command %q, type 'help' for help", name)
	}
	if err == nil {
		err = r.display(name, args, v)
	}
	if err != nil {
		fmt.Fprintf(r.w, "Error: %v\n", err)
	}
	return false
}

// display prints the outcome of command name.
func (r *repl) display(name string, args []string, v *pricedash.View) error {
	switch name {
	case "prices":
		_, err := fmt.Fprint(r.w, renderer.PricesMarkdown(v.Table))
		return err
	case "chart":
		file := "prices.png"
		if len(args) > 0 {
			file = args[0]
		}
		format, err := formatOf(file)
		if err != nil {
			return err
		}
		if err := writeChart(file, v.Table, format); err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.w, "Chart written to %s\n", file)
		return err
	case "universe":
		_, err := fmt.Fprintf(r.w, "Tickers: %s\nDates: %s\n", strings.Join(v.Universe, ", "), v.Span)
		return err
	default:
		if _, err := fmt.Fprintf(r.w, "Selection: %s\n", strings.Join(v.Selection.Tickers, ", ")); err != nil {
			return err
		}
		return renderer.Performance(r.w, v.Report)
	}
}
