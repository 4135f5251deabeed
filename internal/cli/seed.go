package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerkit/ledger-tui/internal/app"
	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/logging"
	"github.com/ledgerkit/ledger-tui/internal/store"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [count]",
		Short: "Insert sample transactions",
		Long:  "Insert count sample transactions (default: --sample-size) into the database.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logging.Close()

			count := cfg.App.SampleSize
			if len(args) == 1 {
				count, err = strconv.Atoi(args[0])
				if err != nil || count < 1 {
					return fmt.Errorf("count must be a positive integer (got %q)", args[0])
				}
			}

			s, err := app.OpenStore(cfg.App)
			if err != nil {
				return err
			}
			defer s.Close()
			inserted, err := store.PutAll(s, ledger.Sample(count, time.Now()))
			if err != nil {
				return fmt.Errorf("insert sample transactions (%d inserted): %w", inserted, err)
			}
			logging.Info("sample transactions added", "count", inserted)
			where := cfg.App.Database
			if cfg.App.Memory {
				where = "memory"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d sample transactions into %s\n", inserted, where)
			return nil
		},
	}
}
