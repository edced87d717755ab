package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ Store = (*SQLite)(nil)

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

// NewSQLite opens (or creates) the journal database at path.
func NewSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	// One writer at a time; sqlite serializes them anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger = logger.Named("sqlite")
	logger.Debug("journal opened", zap.String("path", path))
	return &SQLite{db: db, logger: logger}, nil
}

func (j *SQLite) CreateAccount(ctx context.Context, a Account) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Broker, a.Currency, a.StartingBalance, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create account %q: %w", a.Name, err)
	}
	return nil
}

func (j *SQLite) GetAccount(ctx context.Context, accountID string) (Account, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q %w", accountID, ErrNotFound)
		}
		return Account{}, err
	}
	return a, nil
}

func (j *SQLite) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC, account_id ASC`)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) RecordTrade(ctx context.Context, t TradeRecord) error {
	if _, err := j.db.ExecContext(ctx, insertTradeQuery(questionMark), tradeArgs(t)...); err != nil {
		return fmt.Errorf("record trade %s: %w", t.ID, err)
	}
	j.logger.Debug("trade recorded",
		zap.String("trade_id", t.ID),
		zap.String("symbol", t.Symbol),
		zap.Float64("profit", t.Profit))
	return nil
}

func (j *SQLite) UpdateTrade(ctx context.Context, t TradeRecord) error {
	res, err := j.db.ExecContext(ctx, updateTradeQuery(questionMark), updateArgs(t)...)
	if err != nil {
		return fmt.Errorf("update trade %s: %w", t.ID, err)
	}
	return expectOneRow(res, "trade", t.ID)
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)
	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q %w", tradeID, ErrNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns trades matching f ordered by close time.
func (j *SQLite) ListTrades(ctx context.Context, f Filter) ([]TradeRecord, error) {
	q, args := listTradesQuery(f, questionMark)
	rows, err := j.db.QueryContext(ctx, q, args...)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	return expectOneRow(res, "trade", tradeID)
}

func (j *SQLite) Close() error {
	j.logger.Debug("journal closed")
	return j.db.Close()
}

func expectOneRow(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q %w", kind, key, ErrNotFound)
	}
	return nil
}
