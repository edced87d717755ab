package risk

import (
	"math"

	"github.com/rustyeddy/fxjournal/market"
)

// RRR returns reward as a multiple of risk, rounded to one decimal.
// Both legs are absolute distances from entry, so the ratio is never
// negative and stop/target placement relative to direction is not
// checked. A missing stop or target, or a stop at entry, gives an
// Invalid outcome and a zero ratio.
func RRR(stopLoss, takeProfit *float64, entry float64) (float64, market.Outcome) {
	if stopLoss == nil || takeProfit == nil {
		return 0, market.InvalidBy(market.ReasonMissingStopTarget)
	}
	if !market.Finite(*stopLoss) || !market.Finite(*takeProfit) || !market.Finite(entry) {
		return 0, market.InvalidBy(market.ReasonInvalidPrice)
	}

	risk := math.Abs(entry - *stopLoss)
	if risk == 0 {
		return 0, market.InvalidBy(market.ReasonZeroRiskDistance)
	}
	reward := math.Abs(*takeProfit - entry)
	return market.Round(reward/risk, 1), market.Exact()
}

// PlannedRisk is the account-currency loss if the stop is hit, using the
// same conversion rule as pnl.Calculate: USD-base pairs convert at the
// stop price, USD-quoted pairs are already USD, crosses stay in the quote
// currency and come back Estimated.
func PlannedRisk(symbol string, lots, entry, stop float64) (float64, market.Outcome) {
	pip, out := market.PipValue(symbol)
	pips, _ := market.Pips(symbol, entry, stop)
	amt := math.Abs(pips) * pip * lots * market.LotSize

	if p, ok := market.LookupPair(symbol); ok {
		switch {
		case p.USDIsBase:
			rate, rateOut := market.ConversionRate(symbol, stop)
			out = out.Merge(rateOut)
			amt *= rate
		case p.Cross():
			out = out.Merge(market.EstimatedBy(market.ReasonCrossPair))
		}
	}
	if !out.Valid() {
		return 0, out
	}
	return market.Round(amt, 2), out
}
