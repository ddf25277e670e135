package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/pricedash"
)

const (
	EnvProvider = "PDASH_PROVIDER"
	EnvTickers  = "PDASH_TICKERS"
	EnvInvest   = "PDASH_INVEST"
	EnvCurrency = "PDASH_CURRENCY"
)

// extensionEnv returns the environment of extensions: the current one plus
// the configuration of this run.
func extensionEnv() ([]string, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}
	return append(os.Environ(),
		EnvProvider+"="+cfg.Provider,
		EnvTickers+"="+joinTickers(cfg.Tickers),
		EnvInvest+"="+strconv.FormatFloat(cfg.Invest, 'f', -1, 64),
		EnvCurrency+"="+cfg.Currency,
	), nil
}

// RunExtension attempts to find and execute an external pdash-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "pdash-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	env, err := extensionEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// externalProvider fetches prices by running a pdash-fetch-<name> binary.
//
// The binary reads a json Request on its standard input and writes the json
// PriceTable on its standard output.
type externalProvider struct {
	name string
	path string
}

func newExternalProvider(name string) (*externalProvider, error) {
	path, err := exec.LookPath("pdash-fetch-" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown provider %q: %w", name, err)
	}
	return &externalProvider{name: name, path: path}, nil
}

func (p *externalProvider) Fetch(ctx context.Context, req pricedash.Request) (*pricedash.PriceTable, error) {
	in, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, p.path)
	cmd.Stdin = bytes.NewReader(in)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("provider %q failed: %w", p.name, err)
	}

	t := new(pricedash.PriceTable)
	if err := json.Unmarshal(out.Bytes(), t); err != nil {
		return nil, fmt.Errorf("provider %q returned invalid prices: %w", p.name, err)
	}
	log.Printf("fetch provider=%s tickers=%d rows=%d", p.name, t.Width(), t.Len())
	return t, nil
}
