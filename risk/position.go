package risk

// EURUSD -> quote = USD -> the formula is exact for a USD account
// USDJPY -> quote = JPY -> lots come out sized in JPY, flagged Estimated

import (
	"math"

	"github.com/rustyeddy/fxjournal/market"
)

type Inputs struct {
	Symbol         string
	AccountBalance float64
	RiskPercent    float64 // 1 means 1%
	EntryPrice     float64
	StopLoss       float64
}

type Result struct {
	Lots       float64 // standard lots, 2dp
	Units      float64
	StopPips   float64
	RiskAmount float64

	Outcome market.Outcome
}

// PositionSize returns the lot size that loses RiskPercent of the
// balance if the stop is hit:
//
//	lots = balance*pct/100 / (|stop pips| * pipSize * 100,000)
//
// A stop at the entry price is Invalid instead of producing +Inf.
func PositionSize(in Inputs) Result {
	if !market.Finite(in.AccountBalance) || in.AccountBalance <= 0 {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidBalance)}
	}
	if !market.Finite(in.RiskPercent) || in.RiskPercent <= 0 || in.RiskPercent > 100 {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidRiskPct)}
	}
	if !market.Finite(in.EntryPrice) || in.EntryPrice <= 0 ||
		!market.Finite(in.StopLoss) || in.StopLoss <= 0 {
		return Result{Outcome: market.InvalidBy(market.ReasonInvalidPrice)}
	}

	pip, out := market.PipValue(in.Symbol)
	pips, _ := market.Pips(in.Symbol, in.EntryPrice, in.StopLoss)
	stopPips := math.Abs(pips)

	riskAmt := in.AccountBalance * (in.RiskPercent / 100)
	if stopPips == 0 {
		return Result{
			RiskAmount: riskAmt,
			Outcome:    out.Merge(market.InvalidBy(market.ReasonZeroRiskDistance)),
		}
	}

	if p, ok := market.LookupPair(in.Symbol); ok && !p.USDIsQuote {
		out = out.Merge(market.EstimatedBy(market.ReasonUnconvertedSize))
	}

	lots := market.Round(riskAmt/(stopPips*pip*market.LotSize), 2)
	return Result{
		Lots:       lots,
		Units:      math.Round(lots * market.LotSize),
		StopPips:   market.Round(stopPips, 1),
		RiskAmount: market.Round(riskAmt, 2),
		Outcome:    out,
	}
}
