package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/rustyeddy/fxjournal/risk"
)

// Entry is a trade as the user submits it, before economics are computed.
type Entry struct {
	ID              string
	AccountID       string
	AccountCurrency string
	Symbol          string
	Direction       pnl.Direction
	EntryPrice      float64
	ExitPrice       float64
	LotSize         float64
	StopLoss        *float64
	TakeProfit      *float64
	OpenTime        time.Time
	CloseTime       time.Time
	Setup           string
	Notes           string
}

// Build validates e and computes profit, pips, pip value and RRR.
// A trade whose profit cannot be computed is rejected with
// ErrInvalidTrade; a trade computed from fallbacks is kept and marked
// Estimated.
func Build(e Entry, now time.Time) (TradeRecord, error) {
	if strings.TrimSpace(e.AccountID) == "" {
		return TradeRecord{}, fmt.Errorf("%w: account is required", ErrInvalidTrade)
	}
	symbol := market.NormalizeSymbol(e.Symbol)
	if symbol == "" {
		return TradeRecord{}, fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}

	closeTime := e.CloseTime
	if closeTime.IsZero() {
		closeTime = now
	}
	openTime := e.OpenTime
	if openTime.IsZero() {
		openTime = closeTime
	}
	if closeTime.Before(openTime) {
		return TradeRecord{}, fmt.Errorf("%w: close time %s before open time %s",
			ErrInvalidTrade, closeTime.Format(time.RFC3339), openTime.Format(time.RFC3339))
	}

	res := pnl.Calculate(pnl.Inputs{
		Symbol:          symbol,
		Direction:       e.Direction,
		EntryPrice:      e.EntryPrice,
		ExitPrice:       e.ExitPrice,
		LotSize:         e.LotSize,
		AccountCurrency: e.AccountCurrency,
	})
	if !res.Outcome.Valid() {
		return TradeRecord{}, fmt.Errorf("%w: %s", ErrInvalidTrade, res.Outcome)
	}

	var rrr *float64
	if r, out := risk.RRR(e.StopLoss, e.TakeProfit, e.EntryPrice); out.Valid() {
		rrr = &r
	}

	tradeID := strings.TrimSpace(e.ID)
	if tradeID == "" {
		var err error
		if tradeID, err = id.At(openTime); err != nil {
			return TradeRecord{}, fmt.Errorf("%w: open time: %w", ErrInvalidTrade, err)
		}
	}

	return TradeRecord{
		ID:         tradeID,
		AccountID:  strings.TrimSpace(e.AccountID),
		Symbol:     symbol,
		Direction:  e.Direction,
		EntryPrice: e.EntryPrice,
		ExitPrice:  e.ExitPrice,
		LotSize:    e.LotSize,
		StopLoss:   e.StopLoss,
		TakeProfit: e.TakeProfit,
		OpenTime:   openTime.UTC(),
		CloseTime:  closeTime.UTC(),

		Profit:    res.Profit,
		Pips:      res.Pips,
		PipValue:  res.PipValue,
		IsWin:     res.IsWin,
		RRR:       rrr,
		Estimated: res.Outcome.Status == market.Estimated,
		Reasons:   res.Outcome.Reasons,

		Setup:     e.Setup,
		Notes:     e.Notes,
		CreatedAt: now.UTC(),
	}, nil
}

// Entry returns the user inputs behind t, for editing and rebuilding.
func (t TradeRecord) Entry() Entry {
	return Entry{
		ID:         t.ID,
		AccountID:  t.AccountID,
		Symbol:     t.Symbol,
		Direction:  t.Direction,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		LotSize:    t.LotSize,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		OpenTime:   t.OpenTime,
		CloseTime:  t.CloseTime,
		Setup:      t.Setup,
		Notes:      t.Notes,
	}
}
