// Package cli implements the Cobra command-line interface for ledger-tui.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerkit/ledger-tui/internal/app"
	"github.com/ledgerkit/ledger-tui/internal/config"
	"github.com/ledgerkit/ledger-tui/internal/logging"
)

// Version information set at build time.
var version = "dev"

// ErrConfig marks errors caused by invalid flags, environment or config file.
var ErrConfig = errors.New("configuration error")

type dashboardFunc func(ctx context.Context, cfg app.Config) error

func newRootCmd(dashboard dashboardFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger-tui",
		Short: "Browse and edit financial transactions in the terminal",
		Long: `ledger-tui shows the transactions stored in a local SQLite database as a
scrollable table. Select a cell with the arrow keys (or h/j/k/l), press Enter to
edit it and Enter again to save. Esc cancels, d deletes the selected row, g adds
sample rows, n shows notifications and q quits.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logging.Close()
			traceStartup(cfg)
			return dashboard(cmd.Context(), cfg.App)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newListCmd(), newSeedCmd())
	return cmd
}

// setup resolves configuration for cmd and starts logging.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Resolve(cmd.Flags(), os.Environ())
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg.Args = append([]string(nil), os.Args[1:]...)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := logging.Configure(cfg.Logging.FilePath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
	}
	logging.SetTraceEnabled(cfg.Logging.Trace)
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(app.Run).ExecuteContext(context.Background())
}
