package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/pnl"
)

// CSVHeader is the column order written by WriteCSV. ReadCSV matches
// columns by name, so files may reorder or omit the computed ones.
var CSVHeader = []string{
	"trade_id", "account_id", "symbol", "direction", "entry_price", "exit_price", "lot_size",
	"stop_loss", "take_profit", "open_time", "close_time", "profit", "pips", "pip_value",
	"is_win", "rrr", "estimated", "reasons", "setup", "notes",
}

var requiredColumns = []string{"symbol", "direction", "entry_price", "exit_price", "lot_size"}

func WriteCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.AccountID,
			t.Symbol,
			string(t.Direction),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.LotSize),
			optional(t.StopLoss),
			optional(t.TakeProfit),
			t.OpenTime.UTC().Format(time.RFC3339),
			t.CloseTime.UTC().Format(time.RFC3339),
			strconv.FormatFloat(t.Profit, 'f', 2, 64),
			strconv.FormatFloat(t.Pips, 'f', 1, 64),
			f(t.PipValue),
			strconv.FormatBool(t.IsWin),
			optional(t.RRR),
			strconv.FormatBool(t.Estimated),
			joinReasons(t.Reasons),
			t.Setup,
			t.Notes,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses trade entries from r. Computed columns are ignored;
// economics are recomputed when the entries are built.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}

	var out []Entry
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e, err := parseRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseRow(cols map[string]int, rec []string) (Entry, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		e   Entry
		err error
	)
	e.ID = get("trade_id")
	e.AccountID = get("account_id")
	e.Symbol = get("symbol")
	e.Setup = get("setup")
	e.Notes = get("notes")

	if e.Direction, err = pnl.ParseDirection(get("direction")); err != nil {
		return Entry{}, err
	}
	if e.EntryPrice, err = parseFloat("entry_price", get("entry_price")); err != nil {
		return Entry{}, err
	}
	if e.ExitPrice, err = parseFloat("exit_price", get("exit_price")); err != nil {
		return Entry{}, err
	}
	if e.LotSize, err = parseFloat("lot_size", get("lot_size")); err != nil {
		return Entry{}, err
	}
	if e.StopLoss, err = parseOptional("stop_loss", get("stop_loss")); err != nil {
		return Entry{}, err
	}
	if e.TakeProfit, err = parseOptional("take_profit", get("take_profit")); err != nil {
		return Entry{}, err
	}
	if e.OpenTime, err = parseTime("open_time", get("open_time")); err != nil {
		return Entry{}, err
	}
	if e.CloseTime, err = parseTime("close_time", get("close_time")); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, s)
	}
	return v, nil
}

func parseOptional(name, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parseFloat(name, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseTime accepts RFC3339 or "2006-01-02 15:04" in UTC. Empty is zero.
func parseTime(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: invalid time %q", name, s)
}

func optional(p *float64) string {
	if p == nil {
		return ""
	}
	return f(*p)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
