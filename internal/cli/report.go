package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/fxjournal/analytics"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/spf13/cobra"
)

func newReportCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports over recorded trades",
	}
	cmd.AddCommand(
		newReportSummaryCmd(rc),
		newReportCalendarCmd(rc),
		newReportEquityCmd(rc),
	)
	return cmd
}

// loadTrades opens the journal and returns the trades selected by ff.
func (rc *RootConfig) loadTrades(cmd *cobra.Command, ff *filterFlags) (journal.Store, journal.Filter, []journal.TradeRecord, error) {
	ctx := cmd.Context()
	s, err := rc.openStore(ctx)
	if err != nil {
		return nil, journal.Filter{}, nil, err
	}
	f, err := ff.filter(ctx, rc, s)
	if err != nil {
		s.Close()
		return nil, journal.Filter{}, nil, err
	}
	recs, err := s.ListTrades(ctx, f)
	if err != nil {
		s.Close()
		return nil, journal.Filter{}, nil, fmt.Errorf("query trades: %w", err)
	}
	return s, f, recs, nil
}

// openingBalance is the account balance at from: the starting balance
// plus every trade of the account closed before it.
func openingBalance(ctx context.Context, s journal.Store, a journal.Account, from time.Time) (float64, error) {
	if from.IsZero() {
		return a.StartingBalance, nil
	}
	prior, err := s.ListTrades(ctx, journal.Filter{AccountID: a.ID, To: from})
	if err != nil {
		return 0, fmt.Errorf("query trades before %s: %w", from.Format("2006-01-02"), err)
	}
	return analytics.Balance(a.StartingBalance, prior), nil
}

func newReportSummaryCmd(rc *RootConfig) *cobra.Command {
	ff := &filterFlags{}
	var org bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Win rate, profit factor and averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, recs, err := rc.loadTrades(cmd, ff)
			if err != nil {
				return err
			}
			defer s.Close()
			w := cmd.OutOrStdout()

			if org {
				if f.AccountID == "" {
					return errors.New("--org needs --account")
				}
				a, err := s.GetAccount(cmd.Context(), f.AccountID)
				if err != nil {
					return err
				}
				opening, err := openingBalance(cmd.Context(), s, a, f.From)
				if err != nil {
					return err
				}
				return analytics.NewReport(a, opening, recs, f.From, f.To, rc.Now(), rc.Loc).WriteOrg(w)
			}

			sum := analytics.Summarize(recs)
			ccy := rc.Config.Account.Currency
			rows := [][]string{
				{"Trades", strconv.Itoa(sum.Trades)},
				{"Wins / Losses / Flat", fmt.Sprintf("%d / %d / %d", sum.Wins, sum.Losses, sum.BreakEven)},
				{"Win rate", fmt.Sprintf("%.1f%%", sum.WinRate*100)},
				{"Net profit", pnl.FormatCurrency(sum.NetProfit, ccy)},
				{"Gross profit", pnl.FormatCurrency(sum.GrossProfit, ccy)},
				{"Gross loss", pnl.FormatCurrency(sum.GrossLoss, ccy)},
				{"Profit factor", fmt.Sprintf("%.2f", sum.ProfitFactor)},
				{"Average win", pnl.FormatCurrency(sum.AverageWin, ccy)},
				{"Average loss", pnl.FormatCurrency(sum.AverageLoss, ccy)},
				{"Best trade", pnl.FormatCurrency(sum.BestTrade, ccy)},
				{"Worst trade", pnl.FormatCurrency(sum.WorstTrade, ccy)},
				{"Total pips", pnl.FormatPips(sum.TotalPips)},
				{"Average R:R", fmt.Sprintf("1:%.2f", sum.AverageRRR)},
			}
			fmt.Fprintln(w, renderTable([]string{"Metric", "Value"}, rows))
			if sum.Estimated > 0 {
				fmt.Fprintf(w, "%d of %d trades are estimated\n", sum.Estimated, sum.Trades)
			}
			return nil
		},
	}
	ff.bind(cmd)
	cmd.Flags().BoolVar(&org, "org", false, "write an Org review (requires --account)")
	return cmd
}

func newReportCalendarCmd(rc *RootConfig) *cobra.Command {
	var account, month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Daily P&L for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := rc.Now().In(rc.Loc)
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, rc.Loc)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM)", month)
				}
				start = t
			}
			start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, rc.Loc)
			ff := &filterFlags{account: account}

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
			f.From, f.To = start, start.AddDate(0, 1, 0)
			recs, err := s.ListTrades(ctx, f)
			if err != nil {
				return fmt.Errorf("query trades: %w", err)
			}

			days := analytics.Month(analytics.Calendar(recs, rc.Loc), start.Year(), start.Month(), rc.Loc)
			ccy := rc.Config.Account.Currency
			var total float64
			var trades int
			rows := make([][]string, 0, len(days))
			for _, d := range days {
				wd := d.Date.Weekday()
				if d.Trades == 0 && (wd == time.Saturday || wd == time.Sunday) {
					continue
				}
				profit := ""
				if d.Trades > 0 {
					profit = pnl.FormatCurrency(d.Profit, ccy)
				}
				rows = append(rows, []string{
					d.Date.Format("2006-01-02"),
					wd.String()[:3],
					strconv.Itoa(d.Trades),
					strconv.Itoa(d.Wins),
					profit,
				})
				total += d.Profit
				trades += d.Trades
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", start.Format("January 2006"))
			fmt.Fprintln(w, renderTable([]string{"Date", "Day", "Trades", "Wins", "Profit"}, rows))
			fmt.Fprintf(w, "Month: %d trades, %s\n", trades, pnl.FormatCurrency(total, ccy))
			return nil
		},
	}
	cmd.Flags().StringVarP(&account, "account", "a", "", "account ID or name (default all)")
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current)")
	return cmd
}

func newReportEquityCmd(rc *RootConfig) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Balance after each trade and maximum drawdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := rc.resolveAccount(ctx, s, ff.account)
			if err != nil {
				return err
			}
			ff.account = a.ID
			f, err := ff.filter(ctx, rc, s)
			if err != nil {
				return err
			}
			recs, err := s.ListTrades(ctx, f)
			if err != nil {
				return fmt.Errorf("query trades: %w", err)
			}

			opening, err := openingBalance(ctx, s, a, f.From)
			if err != nil {
				return err
			}
			curve := analytics.EquityCurve(opening, recs)
			rows := make([][]string, 0, len(curve))
			for _, p := range curve {
				rows = append(rows, []string{
					p.Time.In(rc.Loc).Format("2006-01-02 15:04"),
					p.TradeID,
					pnl.FormatCurrency(p.Profit, a.Currency),
					pnl.FormatCurrency(p.Balance, a.Currency),
					fmt.Sprintf("%.2f%%", p.DrawdownPct),
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s) opening balance %s\n", a.Name, a.ID, pnl.FormatCurrency(opening, a.Currency))
			if len(rows) == 0 {
				fmt.Fprintln(w, "No trades.")
				return nil
			}
			fmt.Fprintln(w, renderTable([]string{"Closed", "Trade", "Profit", "Balance", "Drawdown"}, rows))
			dd, pct := analytics.MaxDrawdown(curve)
			fmt.Fprintf(w, "Max drawdown: %s (%.2f%%)\n", pnl.FormatCurrency(dd, a.Currency), pct)
			return nil
		},
	}
	ff.bind(cmd)
	return cmd
}
