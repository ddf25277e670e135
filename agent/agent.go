package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/pricedash"
	"google.golang.org/genai"
)

// Agent is a chat session about a dashboard.
//
// The user talks to a facilitator that forwards questions to the Analyst,
// who runs the dashboard, and to the Trader, who searches the news.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	d           *pricedash.Dashboard
	Facilitator *Expert
	Experts     []*Expert
}

// New returns an Agent answering questions about d.
//
// Answers are written to w, questions are read from r, one per line.
func New(w io.Writer, r io.Reader, d *pricedash.Dashboard) *Agent {
	experts := []*Expert{NewAnalyst(d), NewTrader()}
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		d:           d,
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chat sessions of the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append([]*Expert{a.Facilitator}, a.Experts...) {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting %s: %w", e.Name, err)
		}
	}
	return nil
}

const prompt = "assist> "

// Run answers questions until the user quits or the input ends.
//
// questions are asked first, as if the user had typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, questions ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprint(a.w, a.welcome(ctx))

	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(questions) > 0 {
			input, questions = strings.TrimSpace(questions[0]), questions[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err == io.EOF {
				fmt.Fprintln(a.w)
				return nil
			}
			if err != nil {
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch strings.ToLower(input) {
		case "":
			continue
		case "bye", "quit", "exit":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text(content))
	}
}

// welcome introduces the dashboard the questions are about.
func (a *Agent) welcome(ctx context.Context) string {
	var b strings.Builder
	fmt.Fprintln(&b, "Welcome to pdash assist. Type 'bye' to exit.")
	v, err := a.d.Run(ctx)
	if err != nil {
		fmt.Fprintf(&b, "Prices are not available yet (%v), the Analyst will try again.\n", err)
		return b.String()
	}
	fmt.Fprintf(&b, "Ask about %s between %s and %s.\n", strings.Join(v.Universe, ", "), v.Span.From, v.Span.To)
	return b.String()
}

// text concatenates the text parts of content.
func text(content *genai.Content) string {
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
