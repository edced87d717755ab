package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTradeCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and query closed trades",
		Long: `Record closed trades in the journal and query them.

Examples:
  fxjournal trade log --symbol EURUSD --direction buy --entry 1.1000 --exit 1.1050 --lots 1 --stop 1.0950 --target 1.1150
  fxjournal trade list --from 2024-03-01 --to 2024-03-31
  fxjournal trade show 01HV...`,
	}
	cmd.AddCommand(
		newTradeLogCmd(rc),
		newTradeUpdateCmd(rc),
		newTradeShowCmd(rc),
		newTradeListCmd(rc),
		newTradeDeleteCmd(rc),
	)
	return cmd
}

// tradeFlags are the user inputs shared by log and update.
type tradeFlags struct {
	account, symbol, direction string
	entry, exit, lots          float64
	open, close                string
	setup, notes               string
	clearStop, clearTarget     bool
}

func (tf *tradeFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&tf.account, "account", "a", "", "account ID or name")
	f.StringVarP(&tf.symbol, "symbol", "s", "", "currency pair, e.g. EURUSD")
	f.StringVarP(&tf.direction, "direction", "d", "", "buy|sell (long|short)")
	f.Float64Var(&tf.entry, "entry", 0, "entry price")
	f.Float64Var(&tf.exit, "exit", 0, "exit price")
	f.Float64Var(&tf.lots, "lots", 0, "size in standard lots")
	f.Float64("stop", 0, "stop-loss price")
	f.Float64("target", 0, "take-profit price")
	f.StringVar(&tf.open, "open", "", "open time (YYYY-MM-DD HH:MM, default close time)")
	f.StringVar(&tf.close, "close", "", "close time (YYYY-MM-DD HH:MM, default now)")
	f.StringVar(&tf.setup, "setup", "", "setup or strategy name")
	f.StringVar(&tf.notes, "notes", "", "free-form notes")
}

// bindClear adds the flags that drop a recorded stop or target.
func (tf *tradeFlags) bindClear(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&tf.clearStop, "clear-stop", false, "remove the recorded stop-loss")
	f.BoolVar(&tf.clearTarget, "clear-target", false, "remove the recorded take-profit")
	cmd.MarkFlagsMutuallyExclusive("stop", "clear-stop")
	cmd.MarkFlagsMutuallyExclusive("target", "clear-target")
}

// apply copies the flags that were set onto e.
func (tf *tradeFlags) apply(cmd *cobra.Command, rc *RootConfig, e *journal.Entry) error {
	changed := cmd.Flags().Changed
	if changed("symbol") {
		e.Symbol = tf.symbol
	}
	if changed("direction") {
		d, err := pnl.ParseDirection(tf.direction)
		if err != nil {
			return err
		}
		e.Direction = d
	}
	if changed("entry") {
		e.EntryPrice = tf.entry
	}
	if changed("exit") {
		e.ExitPrice = tf.exit
	}
	if changed("lots") {
		e.LotSize = tf.lots
	}
	if changed("stop") {
		v, err := optionalFloat(cmd, "stop")
		if err != nil {
			return err
		}
		e.StopLoss = v
	}
	if changed("target") {
		v, err := optionalFloat(cmd, "target")
		if err != nil {
			return err
		}
		e.TakeProfit = v
	}
	if tf.clearStop {
		e.StopLoss = nil
	}
	if tf.clearTarget {
		e.TakeProfit = nil
	}
	if changed("open") {
		t, err := parseWhen(tf.open, rc.Loc)
		if err != nil {
			return err
		}
		e.OpenTime = t
	}
	if changed("close") {
		t, err := parseWhen(tf.close, rc.Loc)
		if err != nil {
			return err
		}
		e.CloseTime = t
	}
	if changed("setup") {
		e.Setup = tf.setup
	}
	if changed("notes") {
		e.Notes = tf.notes
	}
	return nil
}

func newTradeLogCmd(rc *RootConfig) *cobra.Command {
	tf := &tradeFlags{}
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a closed trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := rc.resolveAccount(ctx, s, tf.account)
			if err != nil {
				return err
			}
			e := journal.Entry{AccountID: a.ID, AccountCurrency: a.Currency}
			if err := tf.apply(cmd, rc, &e); err != nil {
				return err
			}
			rec, err := journal.Build(e, rc.Now())
			if err != nil {
				return err
			}
			if err := s.RecordTrade(ctx, rec); err != nil {
				return err
			}
			rc.Logger.Info("trade recorded",
				zap.String("trade_id", rec.ID),
				zap.String("symbol", rec.Symbol),
				zap.Bool("estimated", rec.Estimated))
			printTrade(cmd, rec, a.Currency)
			return nil
		},
	}
	tf.bind(cmd)
	for _, name := range []string{"symbol", "direction", "entry", "exit", "lots"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newTradeUpdateCmd(rc *RootConfig) *cobra.Command {
	tf := &tradeFlags{}
	cmd := &cobra.Command{
		Use:   "update <trade-id>",
		Short: "Edit a recorded trade and recompute its economics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			old, err := s.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}
			e := old.Entry()
			if cmd.Flags().Changed("account") {
				e.AccountID = tf.account
			}
			a, err := rc.resolveAccount(ctx, s, e.AccountID)
			if err != nil {
				return err
			}
			e.AccountID = a.ID
			e.AccountCurrency = a.Currency
			if err := tf.apply(cmd, rc, &e); err != nil {
				return err
			}

			rec, err := journal.Build(e, old.CreatedAt)
			if err != nil {
				return err
			}
			if err := s.UpdateTrade(ctx, rec); err != nil {
				return err
			}
			rc.Logger.Info("trade updated", zap.String("trade_id", rec.ID))
			printTrade(cmd, rec, a.Currency)
			return nil
		},
	}
	tf.bind(cmd)
	tf.bindClear(cmd)
	return cmd
}

func newTradeShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Print a trade as an Org entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.GetTrade(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get trade: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
			return nil
		},
	}
}

// filterFlags select trades for list, export and report.
type filterFlags struct {
	account, symbol string
	from, to        string
	limit           int
}

func (ff *filterFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&ff.account, "account", "a", "", "account ID or name (default all)")
	f.StringVarP(&ff.symbol, "symbol", "s", "", "only this currency pair")
	f.StringVar(&ff.from, "from", "", "closed on or after (YYYY-MM-DD)")
	f.StringVar(&ff.to, "to", "", "closed on or before (YYYY-MM-DD)")
	f.IntVar(&ff.limit, "limit", 0, "maximum number of trades")
}

func (ff *filterFlags) filter(ctx context.Context, rc *RootConfig, s journal.Store) (journal.Filter, error) {
	from, to, err := rc.period(ff.from, ff.to)
	if err != nil {
		return journal.Filter{}, err
	}
	f := journal.Filter{Symbol: ff.symbol, From: from, To: to, Limit: ff.limit}
	if ff.account != "" {
		a, err := rc.resolveAccount(ctx, s, ff.account)
		if err != nil {
			return journal.Filter{}, err
		}
		f.AccountID = a.ID
	}
	return f, nil
}

func newTradeListCmd(rc *RootConfig) *cobra.Command {
	ff := &filterFlags{}
	var org bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List closed trades",
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
			if org {
				fmt.Fprintln(w, journal.FormatTradesOrg(recs))
				return nil
			}
			if len(recs) == 0 {
				fmt.Fprintln(w, "No trades.")
				return nil
			}
			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rrr := ""
				if r.RRR != nil {
					rrr = strconv.FormatFloat(*r.RRR, 'f', 2, 64)
				}
				profit := strconv.FormatFloat(r.Profit, 'f', 2, 64)
				if r.Estimated {
					profit += "*"
				}
				rows = append(rows, []string{
					r.ID,
					r.CloseTime.In(rc.Loc).Format("2006-01-02 15:04"),
					r.Symbol,
					string(r.Direction),
					strconv.FormatFloat(r.LotSize, 'f', 2, 64),
					pnl.FormatPips(r.Pips),
					profit,
					rrr,
				})
			}
			fmt.Fprintln(w, renderTable([]string{"ID", "Closed", "Symbol", "Dir", "Lots", "Pips", "Profit", "R:R"}, rows))
			fmt.Fprintf(w, "%d trades (* estimated)\n", len(recs))
			return nil
		},
	}
	ff.bind(cmd)
	cmd.Flags().BoolVar(&org, "org", false, "print as Org entries")
	return cmd
}

func newTradeDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			rc.Logger.Info("trade deleted", zap.String("trade_id", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

func printTrade(cmd *cobra.Command, rec journal.TradeRecord, currency string) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ %s %s %s %.2f lots (%s)\n", winWord(rec.IsWin, rec.Profit), rec.Symbol, rec.Direction, rec.LotSize, rec.ID)
	est := ""
	if rec.Estimated {
		est = note(market.Outcome{Status: market.Estimated, Reasons: rec.Reasons})
	}
	fmt.Fprintf(w, "  Profit:    %s%s\n", pnl.FormatCurrency(rec.Profit, currency), est)
	fmt.Fprintf(w, "  Pips:      %s\n", pnl.FormatPips(rec.Pips))
	if rec.RRR != nil {
		fmt.Fprintf(w, "  R:R:       1:%.2f\n", *rec.RRR)
	}
}
