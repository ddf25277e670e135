package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pricedash/eodhd"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for tickers on EODHD" }
func (*searchCmd) Usage() string {
	return `pdash search <search term>

  Searches for tickers via EOD Historical Data API and prints
  ready-to-use 'pdash' flags for the results.

  Requires the EODHD_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

// apiKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func apiKey() string {
	if *eodhdAPIKey != "" {
		return *eodhdAPIKey
	}
	return os.Getenv(eodhdAPIKeyEnv)
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	key := apiKey()
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable\n", eodhdAPIKeyEnv)
		return subcommands.ExitFailure
	}

	results, err := eodhd.New(key).Search(ctx, searchTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching tickers: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), searchTerm)
	var found []string
	for _, item := range results {
		fmt.Printf("➡️   Name        : %s (%s)\n", item.Name, item.Ticker())
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		fmt.Printf("    ISIN        : %s\n", item.ISIN)
		fmt.Printf("    Prev. Close : %.2f on %s\n\n", item.PreviousClose, item.PreviousCloseDate)
		found = append(found, item.Ticker())
	}
	fmt.Printf("    $ pdash -provider eodhd -tickers %s performance\n", joinTickers(found))
	return subcommands.ExitSuccess
}
