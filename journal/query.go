package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pnl"
)

// placeholder renders the n-th (1-based) bind parameter for a driver.
type placeholder func(n int) string

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

// listTradesQuery builds the SELECT for f ordered by close time.
func listTradesQuery(f Filter, ph placeholder) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, ph(len(args))))
	}

	if f.AccountID != "" {
		add("account_id = %s", f.AccountID)
	}
	if f.Symbol != "" {
		add("symbol = %s", market.NormalizeSymbol(f.Symbol))
	}
	if !f.From.IsZero() {
		add("close_time >= %s", f.From.UTC())
	}
	if !f.To.IsZero() {
		add("close_time < %s", f.To.UTC())
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(tradeColumns)
	b.WriteString(" FROM trades")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY close_time ASC, trade_id ASC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		b.WriteString(" LIMIT ")
		b.WriteString(ph(len(args)))
	}
	return b.String(), args
}

func insertTradeQuery(ph placeholder) string {
	marks := make([]string, 21)
	for i := range marks {
		marks[i] = ph(i + 1)
	}
	return "INSERT INTO trades (" + tradeColumns + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

func updateTradeQuery(ph placeholder) string {
	cols := []string{
		"account_id", "symbol", "direction", "entry_price", "exit_price", "lot_size",
		"stop_loss", "take_profit", "open_time", "close_time", "profit", "pips", "pip_value",
		"is_win", "rrr", "estimated", "reasons", "setup", "notes",
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = %s", c, ph(i+2))
	}
	return "UPDATE trades SET " + strings.Join(sets, ", ") + " WHERE trade_id = " + ph(1)
}

func tradeArgs(t TradeRecord) []any {
	return []any{
		t.ID, t.AccountID, t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice, t.LotSize,
		t.StopLoss, t.TakeProfit, t.OpenTime.UTC(), t.CloseTime.UTC(), t.Profit, t.Pips, t.PipValue, t.IsWin,
		t.RRR, t.Estimated, joinReasons(t.Reasons), t.Setup, t.Notes, t.CreatedAt.UTC(),
	}
}

// updateArgs matches updateTradeQuery: id first, then the mutable columns.
func updateArgs(t TradeRecord) []any {
	return []any{
		t.ID, t.AccountID, t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice, t.LotSize,
		t.StopLoss, t.TakeProfit, t.OpenTime.UTC(), t.CloseTime.UTC(), t.Profit, t.Pips, t.PipValue,
		t.IsWin, t.RRR, t.Estimated, joinReasons(t.Reasons), t.Setup, t.Notes,
	}
}

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (TradeRecord, error) {
	var (
		rec       TradeRecord
		direction string
		reasons   string
	)
	err := row.Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.Symbol,
		&direction,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.LotSize,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.OpenTime,
		&rec.CloseTime,
		&rec.Profit,
		&rec.Pips,
		&rec.PipValue,
		&rec.IsWin,
		&rec.RRR,
		&rec.Estimated,
		&reasons,
		&rec.Setup,
		&rec.Notes,
		&rec.CreatedAt,
	)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.Direction = pnl.Direction(direction)
	rec.Reasons = splitReasons(reasons)
	rec.OpenTime = rec.OpenTime.UTC()
	rec.CloseTime = rec.CloseTime.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Name, &a.Broker, &a.Currency, &a.StartingBalance, &a.CreatedAt); err != nil {
		return Account{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}
