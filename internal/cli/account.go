package cli

import (
	"fmt"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAccountCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage trading accounts",
	}

	var (
		name, broker, currency string
		balance                float64
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if currency == "" {
				currency = rc.Config.Account.Currency
			}
			a, err := journal.NewAccount(name, broker, currency, balance, rc.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.CreateAccount(ctx, a); err != nil {
				return err
			}
			rc.Logger.Info("account created", zap.String("account_id", a.ID), zap.String("name", a.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Account %s (%s)\n", a.Name, a.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "account name (required)")
	addCmd.Flags().StringVar(&broker, "broker", "", "broker name")
	addCmd.Flags().StringVar(&currency, "currency", "", "account currency (default from config)")
	addCmd.Flags().Float64Var(&balance, "balance", 0, "starting balance")
	_ = addCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rc.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			accounts, err := s.ListAccounts(ctx)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts.")
				return nil
			}
			rows := make([][]string, 0, len(accounts))
			for _, a := range accounts {
				rows = append(rows, []string{
					a.ID, a.Name, a.Broker, a.Currency,
					pnl.FormatCurrency(a.StartingBalance, a.Currency),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Broker", "Currency", "Starting balance"}, rows))
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}
