package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PoolConfig struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	// ConnectTries bounds the ping retries on startup.
	ConnectTries uint
	RetryDelay   time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:          10,
		MinConns:          1,
		MaxConnLifetime:   30 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 30 * time.Second,
		ConnectTries:      5,
		RetryDelay:        200 * time.Millisecond,
	}
}

type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects to databaseURL, retrying the initial ping with
// exponential backoff, and creates the schema if needed.
func NewPostgres(ctx context.Context, databaseURL string, cfg PoolConfig, logger *zap.Logger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("postgres")

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns >= 0 && cfg.MinConns <= poolCfg.MaxConns {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	if cfg.RetryDelay > 0 {
		policy.InitialInterval = cfg.RetryDelay
		policy.MaxInterval = cfg.RetryDelay * 10
	}
	tries := cfg.ConnectTries
	if tries == 0 {
		tries = 1
	}
	notify := func(err error, d time.Duration) {
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("backoff", d))
	}
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, pool.Ping(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(notify))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}

	p := &Postgres{pool: pool, logger: logger}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Debug("journal opened", zap.Int32("max_conns", poolCfg.MaxConns))
	return p, nil
}

// Migrate creates the tables and indexes if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) CreateAccount(ctx context.Context, a Account) error {
	_, err := p.pool.Exec(ctx,
		`insert into accounts (`+accountColumns+`) values ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Broker, a.Currency, a.StartingBalance, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create account %q: %w", a.Name, err)
	}
	return nil
}

func (p *Postgres) GetAccount(ctx context.Context, accountID string) (Account, error) {
	row := p.pool.QueryRow(ctx,
		`select `+accountColumns+` from accounts where account_id = $1`, accountID)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q %w", accountID, ErrNotFound)
		}
		return Account{}, err
	}
	return a, nil
}

func (p *Postgres) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := p.pool.Query(ctx,
		`select `+accountColumns+` from accounts order by created_at asc, account_id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) RecordTrade(ctx context.Context, t TradeRecord) error {
	if _, err := p.pool.Exec(ctx, insertTradeQuery(dollar), tradeArgs(t)...); err != nil {
		return fmt.Errorf("record trade %s: %w", t.ID, err)
	}
	return nil
}

func (p *Postgres) UpdateTrade(ctx context.Context, t TradeRecord) error {
	tag, err := p.pool.Exec(ctx, updateTradeQuery(dollar), updateArgs(t)...)
	if err != nil {
		return fmt.Errorf("update trade %s: %w", t.ID, err)
	}
	return expectTag(tag, "trade", t.ID)
}

func (p *Postgres) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	row := p.pool.QueryRow(ctx,
		`select `+tradeColumns+` from trades where trade_id = $1`, tradeID)
	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q %w", tradeID, ErrNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

func (p *Postgres) ListTrades(ctx context.Context, f Filter) ([]TradeRecord, error) {
	q, args := listTradesQuery(f, dollar)
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteTrade(ctx context.Context, tradeID string) error {
	tag, err := p.pool.Exec(ctx, `delete from trades where trade_id = $1`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	return expectTag(tag, "trade", tradeID)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func expectTag(tag pgconn.CommandTag, kind, key string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %q %w", kind, key, ErrNotFound)
	}
	return nil
}
