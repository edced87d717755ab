// journal/journal.go
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/pnl"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidTrade = errors.New("invalid trade")
)

// Account is a brokerage account trades are logged against.
type Account struct {
	ID              string
	Name            string
	Broker          string
	Currency        string
	StartingBalance float64
	CreatedAt       time.Time
}

// NewAccount validates the fields and assigns an ID.
func NewAccount(name, broker, currency string, startingBalance float64, now time.Time) (Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, fmt.Errorf("account name is required")
	}
	if !market.Finite(startingBalance) || startingBalance < 0 {
		return Account{}, fmt.Errorf("starting balance must be zero or positive")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = pnl.DefaultAccountCurrency
	}
	accountID, err := id.At(now)
	if err != nil {
		return Account{}, fmt.Errorf("account id: %w", err)
	}
	return Account{
		ID:              accountID,
		Name:            name,
		Broker:          strings.TrimSpace(broker),
		Currency:        currency,
		StartingBalance: startingBalance,
		CreatedAt:       now.UTC(),
	}, nil
}

// TradeRecord is a closed trade with its computed economics.
type TradeRecord struct {
	ID         string
	AccountID  string
	Symbol     string
	Direction  pnl.Direction
	EntryPrice float64
	ExitPrice  float64
	LotSize    float64
	StopLoss   *float64
	TakeProfit *float64
	OpenTime   time.Time
	CloseTime  time.Time

	Profit    float64
	Pips      float64
	PipValue  float64
	IsWin     bool
	RRR       *float64
	Estimated bool
	Reasons   []market.Reason

	Setup     string
	Notes     string
	CreatedAt time.Time
}

// Filter selects trades by close time in [From, To). Zero values match
// everything.
type Filter struct {
	AccountID string
	Symbol    string
	From      time.Time
	To        time.Time
	Limit     int
}

type Store interface {
	CreateAccount(ctx context.Context, a Account) error
	GetAccount(ctx context.Context, accountID string) (Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	RecordTrade(ctx context.Context, t TradeRecord) error
	UpdateTrade(ctx context.Context, t TradeRecord) error
	GetTrade(ctx context.Context, tradeID string) (TradeRecord, error)
	ListTrades(ctx context.Context, f Filter) ([]TradeRecord, error)
	DeleteTrade(ctx context.Context, tradeID string) error

	Close() error
}

func joinReasons(rs []market.Reason) string {
	s := make([]string, len(rs))
	for i, r := range rs {
		s[i] = string(r)
	}
	return strings.Join(s, ",")
}

func splitReasons(s string) []market.Reason {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]market.Reason, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, market.Reason(p))
		}
	}
	return out
}
