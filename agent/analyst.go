package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/pricedash"
	"github.com/etnz/pricedash/date"
	"github.com/etnz/pricedash/docs"
	"github.com/etnz/pricedash/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator returns the expert talking to the user, who delegates to experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
			You answer the questions of a user looking at pdash, a dashboard of the daily
			closing prices of a few equities between %s and %s.
			The user selects some tickers and a range of dates, and reads the return of each
			ticker and of a portfolio investing the same amount in each of them, bought on
			the first date and held until the last one.

			Never compute a return yourself: ask the Analyst, he runs the dashboard.
			Returns are written as percentages with one decimal, "n/a" means the first price
			of the ticker was zero and it is left out of the portfolio.
			Ask the Trader when the user wants to know why a price moved.

			When the user does not name tickers or dates, the whole dashboard is meant.
			Dates are written YYYY-MM-DD.
		`, pricedash.Window.From, pricedash.Window.To)}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for the news behind price moves.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `The Trader follows the news of listed companies and of their markets.
		Ask the Trader why a ticker rose or fell over some dates, or what happened to
		a company. The Trader does not know the prices of the dashboard.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You follow listed companies: results, dividends, mergers, regulation and the
			markets they are traded on. Tickers are Yahoo Finance symbols, like GALP.LS for
			Galp Energia on Euronext Lisbon.
			Search Google to find the events that explain a price move between two dates,
			and give the date and the source of each of them.
			`}}},
		},
	}
}

// NewAnalyst returns an expert running the dashboard d to answer questions
// about prices and performance.
func NewAnalyst(d *pricedash.Dashboard) *Expert {
	lib := []Function{Universe(d), Performance(d)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of the dashboard of equity prices.
		He knows which tickers can be selected, over which dates, and can compute the
		performance of an equal investment in any selection of them.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of a dashboard of equity closing prices.
				You know how to use the Tools to compute the performance of a buy-and-hold
				portfolio investing the same amount in each selected ticker.
				You are part of a team of experts, they might ask you questions about
				the dashboard, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about
				  - the tickers and dates available
				  - the return of each ticker and of the portfolio over a date range
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Universe returns the function listing the tickers and dates of d.
func Universe(d *pricedash.Dashboard) *Func {
	const name = "universe"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `List the tickers that can be selected in the dashboard, and the first and last dates with prices.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The tickers and the span of dates.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			v, err := d.Run(ctx)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, fmt.Sprintf("tickers: %s\ndates: %s", strings.Join(v.Universe, ", "), v.Span))
		},
	}
}

// Performance returns the function computing the performance of a selection of d.
func Performance(d *pricedash.Dashboard) *Func {
	const name = "performance"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Compute the return of each selected ticker and of the portfolio investing the same amount
			in each of them, from the first to the last date.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tickers": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "The tickers to select. All tickers are selected by default.",
					},
					"from": {
						Type:        genai.TypeString,
						Description: "The first date, the first date with prices by default.\n\n" + must(docs.GetTopic("dates")),
					},
					"to": {
						Type:        genai.TypeString,
						Description: "The last date, the last date with prices by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report with the return of each ticker and of the portfolio.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := parseSelection(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			v, err := d.Apply(ctx, s)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.RenderPerformance(v.Report))
		},
	}
}

// parseSelection reads the selection arguments of a function call.
func parseSelection(args map[string]any) (s pricedash.Selection, err error) {
	if raw, ok := args["tickers"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return s, fmt.Errorf("argument 'tickers' is not a list as expected but %T", raw)
		}
		for _, item := range list {
			ticker, ok := item.(string)
			if !ok {
				return s, fmt.Errorf("argument 'tickers' contains a %T, expected string", item)
			}
			s.Tickers = append(s.Tickers, ticker)
		}
	}
	if s.Range.From, err = parseDate(args, "from"); err != nil {
		return s, err
	}
	if s.Range.To, err = parseDate(args, "to"); err != nil {
		return s, err
	}
	// an open bound is the edge of the window
	if s.Range.From.IsZero() != s.Range.To.IsZero() {
		if s.Range.From.IsZero() {
			s.Range.From = pricedash.Window.From
		} else {
			s.Range.To = pricedash.Window.To
		}
	}
	return s, nil
}

func parseDate(args map[string]any, key string) (date.Date, error) {
	raw, ok := args[key]
	if !ok {
		return date.Date{}, nil
	}
	str, ok := raw.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("argument %q is not a string as expected but %T", key, raw)
	}
	if str == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(str)
	if err != nil {
		return date.Date{}, fmt.Errorf("argument %q must be a valid date got %q. Below is the doc about the format date\n\n%s ", key, str, must(docs.GetTopic("dates")))
	}
	return d, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
