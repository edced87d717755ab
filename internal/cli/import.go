package cli

import (
	"fmt"
	"os"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/spf13/cobra"
)

func newImportCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trades into the journal",
	}

	var (
		account string
		workers int
	)
	csvCmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import closed trades from a CSV file",
		Long: `Import closed trades from a CSV file with a header row.

Required columns: symbol, direction, entry_price, exit_price, lot_size.
Optional: trade_id, account_id, stop_loss, take_profit, open_time,
close_time, setup, notes. Computed columns (profit, pips, ...) are
ignored and recomputed. Files written by 'fxjournal export csv' can be
imported as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fh.Close()
			entries, err := journal.ReadCSV(fh)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var defaultAccount string
			if account != "" || hasMissingAccount(entries) {
				a, err := rc.resolveAccount(ctx, s, account)
				if err != nil {
					return err
				}
				defaultAccount = a.ID
			}
			if !cmd.Flags().Changed("workers") {
				workers = rc.Config.Import.Workers
			}

			im := &journal.Importer{
				Store:          s,
				Workers:        workers,
				Logger:         rc.Logger,
				DefaultAccount: defaultAccount,
				Now:            rc.Now,
			}
			n, err := im.Import(ctx, entries)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d trades\n", n, len(entries))
			return err
		},
	}
	csvCmd.Flags().StringVarP(&account, "account", "a", "", "account for rows without account_id")
	csvCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers (default from config)")

	cmd.AddCommand(csvCmd)
	return cmd
}

func hasMissingAccount(entries []journal.Entry) bool {
	for _, e := range entries {
		if e.AccountID == "" {
			return true
		}
	}
	return false
}
