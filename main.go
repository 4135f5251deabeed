package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledgerkit/ledger-tui/internal/cli"
	"github.com/ledgerkit/ledger-tui/internal/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrConfig) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
