package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/fxjournal/risk"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. FXJ_JOURNAL_DB_PATH.
const EnvPrefix = "FXJ"

// Config represents the complete journal configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account" mapstructure:"account"`
	Risk    RiskConfig    `json:"risk" yaml:"risk" mapstructure:"risk"`
	Journal JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Import  ImportConfig  `json:"import" yaml:"import" mapstructure:"import"`
}

// AccountConfig holds the defaults used by calculator commands and for
// new accounts.
type AccountConfig struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Currency string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	Balance  float64 `json:"balance" yaml:"balance" mapstructure:"balance"`
}

// RiskConfig is expressed in percent of balance (1 = 1%).
type RiskConfig struct {
	RiskPercent          float64 `json:"risk_percent" yaml:"risk_percent" mapstructure:"risk_percent"`
	MaxRiskPercent       float64 `json:"max_risk_percent" yaml:"max_risk_percent" mapstructure:"max_risk_percent"`
	MaxDailyLossPercent  float64 `json:"max_daily_loss_percent" yaml:"max_daily_loss_percent" mapstructure:"max_daily_loss_percent"`
	MaxWeeklyLossPercent float64 `json:"max_weekly_loss_percent" yaml:"max_weekly_loss_percent" mapstructure:"max_weekly_loss_percent"`
	MinRR                float64 `json:"min_rr" yaml:"min_rr" mapstructure:"min_rr"`
}

// Policy converts the settings for risk.Evaluate.
func (r RiskConfig) Policy() risk.Policy {
	return risk.Policy{
		DefaultRiskPct:   r.RiskPercent,
		MaxRiskPct:       r.MaxRiskPercent,
		MaxDailyLossPct:  r.MaxDailyLossPercent,
		MaxWeeklyLossPct: r.MaxWeeklyLossPercent,
		MinRR:            r.MinRR,
	}
}

// JournalConfig selects the trade store
type JournalConfig struct {
	Type        string `json:"type" yaml:"type" mapstructure:"type"` // "sqlite" or "postgres"
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" mapstructure:"database_url"`
	MaxConns    int32  `json:"max_conns,omitempty" yaml:"max_conns,omitempty" mapstructure:"max_conns"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // "console" or "json"
}

type ImportConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	p := risk.DefaultPolicy()
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Balance:  10000,
		},
		Risk: RiskConfig{
			RiskPercent:          p.DefaultRiskPct,
			MaxRiskPercent:       p.MaxRiskPct,
			MaxDailyLossPercent:  p.MaxDailyLossPct,
			MaxWeeklyLossPercent: p.MaxWeeklyLossPct,
			MinRR:                p.MinRR,
		},
		Journal: JournalConfig{
			Type:     "sqlite",
			DBPath:   DefaultDBPath(),
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Import: ImportConfig{
			Workers: 4,
		},
	}
}

// DefaultDBPath is ~/.fxjournal/journal.db, or ./fxjournal.db when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "fxjournal.db"
	}
	return filepath.Join(home, ".fxjournal", "journal.db")
}

// Load resolves configuration from defaults, the optional file at path
// and FXJ_ environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("account.id", d.Account.ID)
	v.SetDefault("account.currency", d.Account.Currency)
	v.SetDefault("account.balance", d.Account.Balance)

	v.SetDefault("risk.risk_percent", d.Risk.RiskPercent)
	v.SetDefault("risk.max_risk_percent", d.Risk.MaxRiskPercent)
	v.SetDefault("risk.max_daily_loss_percent", d.Risk.MaxDailyLossPercent)
	v.SetDefault("risk.max_weekly_loss_percent", d.Risk.MaxWeeklyLossPercent)
	v.SetDefault("risk.min_rr", d.Risk.MinRR)

	v.SetDefault("journal.type", d.Journal.Type)
	v.SetDefault("journal.db_path", d.Journal.DBPath)
	v.SetDefault("journal.database_url", d.Journal.DatabaseURL)
	v.SetDefault("journal.max_conns", d.Journal.MaxConns)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("import.workers", d.Import.Workers)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(strings.TrimSpace(c.Account.Currency)) != 3 {
		return errors.New("account.currency must be a 3-letter code")
	}
	if c.Account.Balance < 0 {
		return errors.New("account.balance must not be negative")
	}

	r := c.Risk
	if r.RiskPercent <= 0 || r.RiskPercent > 100 {
		return errors.New("risk.risk_percent must be between 0 and 100")
	}
	if r.MaxRiskPercent < r.RiskPercent || r.MaxRiskPercent > 100 {
		return errors.New("risk.max_risk_percent must be between risk_percent and 100")
	}
	if r.MaxDailyLossPercent < 0 || r.MaxWeeklyLossPercent < 0 {
		return errors.New("risk loss limits must not be negative")
	}
	if r.MinRR < 0 {
		return errors.New("risk.min_rr must not be negative")
	}

	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return errors.New("journal.db_path required for sqlite")
		}
	case "postgres":
		if c.Journal.DatabaseURL == "" {
			return errors.New("journal.database_url required for postgres")
		}
	default:
		return errors.New("journal.type must be 'sqlite' or 'postgres'")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.New("log.format must be 'console' or 'json'")
	}
	if c.Import.Workers < 0 {
		return errors.New("import.workers must not be negative")
	}
	return nil
}
