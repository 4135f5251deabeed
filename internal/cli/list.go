package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ledgerkit/ledger-tui/internal/app"
	tablefmt "github.com/ledgerkit/ledger-tui/internal/format/table"
	"github.com/ledgerkit/ledger-tui/internal/ledger"
	"github.com/ledgerkit/ledger-tui/internal/logging"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all transactions as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logging.Close()

			s, err := app.OpenStore(cfg.App)
			if err != nil {
				return err
			}
			defer s.Close()
			rows, err := s.List()
			if err != nil {
				return fmt.Errorf("list transactions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No transactions.")
				return nil
			}
			cells := [][]string{{"ID", "Date", "Category", "Description", "Amount"}}
			var total int64
			for _, tx := range rows {
				total += tx.Amount
				cells = append(cells, []string{
					strconv.FormatInt(tx.ID, 10),
					tx.Cell(ledger.FieldDate),
					tx.Cell(ledger.FieldCategory),
					tx.Cell(ledger.FieldDescription),
					tx.Cell(ledger.FieldAmount),
				})
			}
			aligns := []tablefmt.Alignment{
				tablefmt.AlignRight,
				tablefmt.AlignLeft,
				tablefmt.AlignLeft,
				tablefmt.AlignLeft,
				tablefmt.AlignRight,
			}
			for _, line := range tablefmt.Format(cells, aligns) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "\n%s transactions, total %s\n", humanize.Comma(int64(len(rows))), ledger.FormatAmount(total))
			return nil
		},
	}
}
