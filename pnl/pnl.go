// Package pnl computes the realized economics of a closed FX trade.
package pnl

import (
	"github.com/rustyeddy/fxjournal/market"
)

// DefaultAccountCurrency is assumed when Inputs.AccountCurrency is empty.
const DefaultAccountCurrency = "USD"

type Inputs struct {
	Symbol          string
	Direction       Direction
	EntryPrice      float64
	ExitPrice       float64
	LotSize         float64 // standard lots
	AccountCurrency string  // "" means USD
}

type Result struct {
	Profit   float64 // account currency, 2dp
	Pips     float64 // signed for the direction, 1dp
	PipValue float64 // value of one pip for one standard lot
	IsWin    bool

	Outcome market.Outcome
}

// Calculate returns profit, pips and pip value for a closed trade.
//
// Profit is pips * pipSize * units in the quote currency. When USD is the
// base currency it is converted at the exit price. When USD is the quote
// the quote-currency amount is already USD. Cross pairs are left
// unconverted and the result is marked Estimated.
func Calculate(in Inputs) Result {
	var out market.Outcome

	if !in.Direction.Valid() {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidDirection)}
	}
	if !market.Finite(in.EntryPrice) || in.EntryPrice <= 0 ||
		!market.Finite(in.ExitPrice) || in.ExitPrice <= 0 {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidPrice)}
	}
	if !market.Finite(in.LotSize) || in.LotSize < 0 {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidLotSize)}
	}

	pip, pipOut := market.PipValue(in.Symbol)
	out = out.Merge(pipOut)

	pips, _ := market.Pips(in.Symbol, in.EntryPrice, in.ExitPrice)
	pips *= in.Direction.Sign()

	units := in.LotSize * market.LotSize
	profit := pips * pip * units

	if p, ok := market.LookupPair(in.Symbol); ok {
		switch {
		case p.USDIsBase:
			rate, rateOut := market.ConversionRate(in.Symbol, in.ExitPrice)
			out = out.Merge(rateOut)
			profit *= rate
		case p.Cross():
			out = out.Merge(market.EstimatedBy(market.ReasonCrossPair))
		}
	}

	if in.AccountCurrency != "" && market.NormalizeSymbol(in.AccountCurrency) != DefaultAccountCurrency {
		out = out.Merge(market.EstimatedBy(market.ReasonAccountCurrency))
	}

	if !out.Valid() {
		return Result{Outcome: out}
	}

	profit = market.Round(profit, 2)
	return Result{
		Profit:   profit,
		Pips:     market.Round(pips, 1),
		PipValue: pip * market.LotSize,
		IsWin:    profit > 0,
		Outcome:  out,
	}
}
