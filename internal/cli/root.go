package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/fxjournal/config"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootConfig carries the resolved settings to every subcommand.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string

	Config *config.Config
	Logger *zap.Logger
	Now    func() time.Time
	Loc    *time.Location
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootConfig{Now: time.Now, Loc: time.Local})
}

func newRootCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fxjournal",
		Short: "FX trade journal and trade-economics calculator",
		Long: `fxjournal records closed FX trades and computes their economics:
profit in the account currency, pips, pip value, risk/reward and
risk-based position size.

Figures that rely on fallbacks (cross pairs, unknown pairs, non-USD
accounts) are reported as estimated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides journal.db_path)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load()
	}

	cmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(rc),
		newCalcCmd(rc),
		newAccountCmd(rc),
		newTradeCmd(rc),
		newExportCmd(rc),
		newImportCmd(rc),
		newReportCmd(rc),
	)

	return cmd
}

func (rc *RootConfig) load() error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return err
	}
	if rc.DBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = rc.DBPath
	}
	level := cfg.Log.Level
	if rc.LogLevel != "" {
		level = rc.LogLevel
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}

	rc.Config = cfg
	rc.Logger = logger.Named("fxjournal")
	rc.Logger.Debug("config resolved",
		zap.String("config", rc.ConfigPath),
		zap.String("journal", cfg.Journal.Type),
		zap.String("currency", cfg.Account.Currency))
	return nil
}

// openStore opens the configured journal.
func (rc *RootConfig) openStore(ctx context.Context) (journal.Store, error) {
	j := rc.Config.Journal
	switch j.Type {
	case "postgres":
		pc := journal.DefaultPoolConfig()
		if j.MaxConns > 0 {
			pc.MaxConns = j.MaxConns
		}
		p, err := journal.NewPostgres(ctx, j.DatabaseURL, pc, rc.Logger)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		return p, nil
	default:
		if dir := filepath.Dir(j.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create journal dir: %w", err)
			}
		}
		s, err := journal.NewSQLite(j.DBPath, rc.Logger)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		return s, nil
	}
}

func Execute() {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
