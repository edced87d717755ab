package cli

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/fxjournal/analytics"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/rustyeddy/fxjournal/risk"
	"github.com/spf13/cobra"
)

func newCalcCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Trade-economics calculators",
		Long: `Compute trade figures without touching the journal.

Examples:
  fxjournal calc profit --symbol EURUSD --direction buy --entry 1.1000 --exit 1.1050 --lots 1
  fxjournal calc size --symbol EURUSD --balance 10000 --risk 1 --entry 1.1000 --stop 1.0950
  fxjournal calc rrr --entry 1.1000 --stop 1.0950 --target 1.1150`,
	}
	cmd.AddCommand(
		newCalcPipsCmd(),
		newCalcPipValueCmd(),
		newCalcProfitCmd(rc),
		newCalcRRRCmd(),
		newCalcSizeCmd(rc),
		newCalcCheckCmd(rc),
		newCalcPairsCmd(),
	)
	return cmd
}

func newCalcPipsCmd() *cobra.Command {
	var symbol string
	var entry, exit float64
	cmd := &cobra.Command{
		Use:   "pips",
		Short: "Price difference in pips (exit - entry)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, out := market.Pips(symbol, entry, exit)
			if !out.Valid() {
				return invalid("pips", out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pips: %s%s\n", pnl.FormatPips(p), note(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "currency pair, e.g. EURUSD")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().Float64Var(&exit, "exit", 0, "exit price")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newCalcPipValueCmd() *cobra.Command {
	var symbol string
	cmd := &cobra.Command{
		Use:   "pipvalue",
		Short: "Pip size and the value of one pip per standard lot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pip, out := market.PipValue(symbol)
			w := cmd.OutOrStdout()
			quote := "quote"
			if info, ok := market.LookupPair(symbol); ok {
				quote = info.Quote
			}
			fmt.Fprintf(w, "Pip size:      %g%s\n", pip, note(out))
			fmt.Fprintf(w, "Per lot:       %.2f %s\n", pip*market.LotSize, quote)
			return nil
		},
	}
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "currency pair, e.g. USDJPY")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newCalcProfitCmd(rc *RootConfig) *cobra.Command {
	var (
		symbol, direction, currency string
		entry, exit, lots           float64
	)
	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Profit, pips and pip value of a closed trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := pnl.ParseDirection(direction)
			if err != nil {
				return err
			}
			if currency == "" {
				currency = rc.Config.Account.Currency
			}
			res := pnl.Calculate(pnl.Inputs{
				Symbol:          symbol,
				Direction:       dir,
				EntryPrice:      entry,
				ExitPrice:       exit,
				LotSize:         lots,
				AccountCurrency: currency,
			})
			if !res.Outcome.Valid() {
				return invalid("profit", res.Outcome)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Profit:    %s%s\n", pnl.FormatCurrency(res.Profit, currency), note(res.Outcome))
			fmt.Fprintf(w, "Pips:      %s\n", pnl.FormatPips(res.Pips))
			fmt.Fprintf(w, "Pip value: %.2f per lot\n", res.PipValue)
			fmt.Fprintf(w, "Result:    %s\n", winWord(res.IsWin, res.Profit))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&symbol, "symbol", "s", "", "currency pair, e.g. EURUSD")
	f.StringVarP(&direction, "direction", "d", "", "buy|sell (long|short)")
	f.Float64Var(&entry, "entry", 0, "entry price")
	f.Float64Var(&exit, "exit", 0, "exit price")
	f.Float64Var(&lots, "lots", 1, "size in standard lots")
	f.StringVar(&currency, "currency", "", "account currency (default from config)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}

func winWord(isWin bool, profit float64) string {
	switch {
	case isWin:
		return "WIN"
	case profit < 0:
		return "LOSS"
	}
	return "BREAK-EVEN"
}

func newCalcRRRCmd() *cobra.Command {
	var entry float64
	cmd := &cobra.Command{
		Use:   "rrr",
		Short: "Risk/reward ratio |target-entry| / |entry-stop|",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := optionalFloat(cmd, "stop")
			if err != nil {
				return err
			}
			target, err := optionalFloat(cmd, "target")
			if err != nil {
				return err
			}
			r, out := risk.RRR(stop, target, entry)
			if !out.Valid() {
				return invalid("risk/reward", out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "R:R 1:%.2f\n", r)
			return nil
		},
	}
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().Float64("stop", 0, "stop-loss price")
	cmd.Flags().Float64("target", 0, "take-profit price")
	return cmd
}

func newCalcSizeCmd(rc *RootConfig) *cobra.Command {
	var (
		symbol                    string
		balance, pct, entry, stop float64
	)
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Position size that risks a percent of the balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("balance") {
				balance = rc.Config.Account.Balance
			}
			if !cmd.Flags().Changed("risk") {
				pct = rc.Config.Risk.RiskPercent
			}
			res := risk.PositionSize(risk.Inputs{
				Symbol:         symbol,
				AccountBalance: balance,
				RiskPercent:    pct,
				EntryPrice:     entry,
				StopLoss:       stop,
			})
			if !res.Outcome.Valid() {
				return invalid("position size", res.Outcome)
			}
			w := cmd.OutOrStdout()
			ccy := rc.Config.Account.Currency
			fmt.Fprintf(w, "Lots:      %.2f%s\n", res.Lots, note(res.Outcome))
			fmt.Fprintf(w, "Units:     %.0f\n", res.Units)
			fmt.Fprintf(w, "Stop:      %.1f pips\n", res.StopPips)
			fmt.Fprintf(w, "Risk:      %s (%.2f%%)\n", pnl.FormatCurrency(res.RiskAmount, ccy), pct)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&symbol, "symbol", "s", "", "currency pair, e.g. EURUSD")
	f.Float64Var(&balance, "balance", 0, "account balance (default from config)")
	f.Float64Var(&pct, "risk", 0, "risk percent of balance, 1 = 1% (default from config)")
	f.Float64Var(&entry, "entry", 0, "entry price")
	f.Float64Var(&stop, "stop", 0, "stop-loss price")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newCalcCheckCmd(rc *RootConfig) *cobra.Command {
	var (
		symbol, account   string
		lots, entry, stop float64
		balance           float64
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a planned trade against the risk policy",
		Long: `Check a planned trade against the configured risk policy.

With --account the day and week realized P/L are read from the journal
and the account's starting balance plus realized profit is used as the
balance. Otherwise --balance (or account.balance) is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := optionalFloat(cmd, "target")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("balance") {
				balance = rc.Config.Account.Balance
			}

			var snap risk.PnLSnapshot
			if account != "" {
				ctx := cmd.Context()
				s, err := rc.openStore(ctx)
				if err != nil {
					return err
				}
				defer s.Close()
				a, err := rc.resolveAccount(ctx, s, account)
				if err != nil {
					return err
				}
				recs, err := s.ListTrades(ctx, journal.Filter{AccountID: a.ID})
				if err != nil {
					return err
				}
				now := rc.Now()
				snap = analytics.Realized(recs, now, rc.Loc)
				if !cmd.Flags().Changed("balance") {
					balance = a.StartingBalance + analytics.Summarize(recs).NetProfit
				}
			}

			d := risk.Evaluate(rc.Config.Risk.Policy(), risk.Plan{
				Symbol:     symbol,
				Lots:       lots,
				Entry:      entry,
				Stop:       stop,
				TakeProfit: target,
			}, balance, snap)

			w := cmd.OutOrStdout()
			ccy := rc.Config.Account.Currency
			fmt.Fprintf(w, "Planned risk: %s (%.2f%%)%s\n", pnl.FormatCurrency(d.PlannedRisk, ccy), d.PlannedRiskPct, note(d.Outcome))
			if d.PlannedRR > 0 {
				fmt.Fprintf(w, "Planned R:R:  1:%.2f\n", d.PlannedRR)
			}
			fmt.Fprintf(w, "Realized:     day %s, week %s\n",
				pnl.FormatCurrency(snap.DayRealized, ccy), pnl.FormatCurrency(snap.WeekRealized, ccy))
			if d.Allowed {
				fmt.Fprintln(w, "✓ Allowed")
				return nil
			}
			for _, v := range d.Violations {
				fmt.Fprintf(w, "✗ %s: %s\n", v.Code, v.Msg)
			}
			return errors.New("trade not allowed by risk policy")
		},
	}
	f := cmd.Flags()
	f.StringVarP(&symbol, "symbol", "s", "", "currency pair, e.g. EURUSD")
	f.Float64Var(&lots, "lots", 0, "planned size in standard lots")
	f.Float64Var(&entry, "entry", 0, "entry price")
	f.Float64Var(&stop, "stop", 0, "stop-loss price")
	f.Float64("target", 0, "take-profit price")
	f.Float64Var(&balance, "balance", 0, "account balance (default from config or journal)")
	f.StringVarP(&account, "account", "a", "", "read realized P/L for this account from the journal")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newCalcPairsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "List the known currency pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, s := range market.Symbols() {
				info, _ := market.LookupPair(s)
				kind := "cross"
				switch {
				case info.USDIsQuote:
					kind = "USD quote"
				case info.USDIsBase:
					kind = "USD base"
				}
				rows = append(rows, []string{s, info.Base, info.Quote, fmt.Sprint(info.PipDecimalPlace), kind})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Symbol", "Base", "Quote", "Pip dp", "Conversion"}, rows))
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown pairs use %d pip decimals and are reported as estimated.\n",
				market.DefaultPipDecimalPlace)
			return nil
		},
	}
}
