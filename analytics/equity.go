package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/shopspring/decimal"
)

type EquityPoint struct {
	Time    time.Time
	TradeID string
	Profit  float64
	Balance float64
	Peak    float64

	// Drawdown is Peak-Balance; DrawdownPct is that as a percent of Peak.
	Drawdown    float64
	DrawdownPct float64
}

// EquityCurve replays records in close-time order starting from
// startBalance.
func EquityCurve(startBalance float64, records []journal.TradeRecord) []EquityPoint {
	sorted := append([]journal.TradeRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CloseTime.Before(sorted[j].CloseTime)
	})

	bal := decimal.NewFromFloat(startBalance)
	peak := bal
	out := make([]EquityPoint, 0, len(sorted))
	for _, r := range sorted {
		bal = bal.Add(decimal.NewFromFloat(r.Profit))
		if bal.GreaterThan(peak) {
			peak = bal
		}
		dd := peak.Sub(bal)
		var ddPct float64
		if peak.IsPositive() {
			ddPct = dd.Div(peak).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		out = append(out, EquityPoint{
			Time:        r.CloseTime,
			TradeID:     r.ID,
			Profit:      r.Profit,
			Balance:     bal.Round(2).InexactFloat64(),
			Peak:        peak.Round(2).InexactFloat64(),
			Drawdown:    dd.Round(2).InexactFloat64(),
			DrawdownPct: ddPct,
		})
	}
	return out
}

// Balance is startBalance plus the profit of every record.
func Balance(startBalance float64, records []journal.TradeRecord) float64 {
	bal := decimal.NewFromFloat(startBalance)
	for _, r := range records {
		bal = bal.Add(decimal.NewFromFloat(r.Profit))
	}
	return bal.Round(2).InexactFloat64()
}

// MaxDrawdown returns the deepest point of the curve by amount.
func MaxDrawdown(curve []EquityPoint) (amount, pct float64) {
	for _, p := range curve {
		if p.Drawdown > amount {
			amount = p.Drawdown
			pct = p.DrawdownPct
		}
	}
	return amount, pct
}
