package cmd

import (
	"flag"

	"github.com/etnz/pricedash/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the predictors of flag values, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"config":   predict.Files("*.yaml"),
	"provider": predict.Set{"yahoo", "eodhd"},
	"o":        predict.Files("*"),
	"currency": predict.Set{"EUR", "USD", "GBP", "CHF"},
}

// predictFlags returns the predictors of every flag of fs.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch p, ok := flagPredictors[f.Name]; {
		case ok:
			flags[f.Name] = p
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// Completion returns the shell completion of pdash, predicting tickers of the universe.
func Completion(universe []string) *complete.Command {
	tickers := predict.Set(universe)
	var topics predict.Set
	if index, err := docs.Index(); err == nil {
		for _, t := range index {
			topics = append(topics, t.Name)
		}
	}

	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		switch c.Name() {
		case "prices", "chart", "performance":
			sub.Args = tickers
		case "topic":
			sub.Args = topics
		}
		root.Sub[c.Name()] = sub
	}
	return root
}
