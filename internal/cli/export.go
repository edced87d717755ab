package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades as CSV or Org",
	}
	cmd.AddCommand(
		newExportFormatCmd(rc, "csv", "Export trades as CSV", func(w io.Writer, recs []journal.TradeRecord) error {
			return journal.WriteCSV(w, recs)
		}),
		newExportFormatCmd(rc, "org", "Export trades as Org entries", func(w io.Writer, recs []journal.TradeRecord) error {
			_, err := io.WriteString(w, journal.FormatTradesOrg(recs))
			return err
		}),
	)
	return cmd
}

func newExportFormatCmd(rc *RootConfig, use, short string, write func(io.Writer, []journal.TradeRecord) error) *cobra.Command {
	ff := &filterFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := ff.filter(ctx, rc, s)
			if err != nil {
				return err
			}
			recs, err := s.ListTrades(ctx, f)
			if err != nil {
				return fmt.Errorf("query trades: %w", err)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				fh, err := os.Create(output)
				if err != nil {
					return err
				}
				defer fh.Close()
				w = fh
			}
			if err := write(w, recs); err != nil {
				return fmt.Errorf("export %s: %w", use, err)
			}
			rc.Logger.Info("export finished", zap.String("format", use), zap.Int("trades", len(recs)), zap.String("output", output))
			return nil
		},
	}
	ff.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
