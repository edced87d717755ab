// Package analytics derives statistics from recorded trades.
package analytics

import (
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Trades    int
	Wins      int
	Losses    int
	BreakEven int
	Estimated int

	// WinRate is Wins/Trades in [0, 1].
	WinRate      float64
	NetProfit    float64
	GrossProfit  float64
	GrossLoss    float64 // positive
	ProfitFactor float64 // 0 when there are no losses
	AverageWin   float64
	AverageLoss  float64 // positive
	BestTrade    float64
	WorstTrade   float64
	TotalPips    float64
	AverageRRR   float64 // over trades that have one
}

// Summarize aggregates records. Sums are kept in decimal so the net
// profit equals the sum of the rounded per-trade profits.
func Summarize(records []journal.TradeRecord) Summary {
	var (
		s                 Summary
		gross, loss, pips decimal.Decimal
		rrrSum            decimal.Decimal
		rrrCount          int
	)
	for i, r := range records {
		p := decimal.NewFromFloat(r.Profit)
		switch {
		case r.Profit > 0:
			s.Wins++
			gross = gross.Add(p)
		case r.Profit < 0:
			s.Losses++
			loss = loss.Sub(p)
		default:
			s.BreakEven++
		}
		if r.Estimated {
			s.Estimated++
		}
		pips = pips.Add(decimal.NewFromFloat(r.Pips))
		if r.RRR != nil {
			rrrSum = rrrSum.Add(decimal.NewFromFloat(*r.RRR))
			rrrCount++
		}
		if i == 0 || r.Profit > s.BestTrade {
			s.BestTrade = r.Profit
		}
		if i == 0 || r.Profit < s.WorstTrade {
			s.WorstTrade = r.Profit
		}
	}

	s.Trades = len(records)
	if s.Trades == 0 {
		return s
	}
	s.WinRate = float64(s.Wins) / float64(s.Trades)
	s.GrossProfit = gross.Round(2).InexactFloat64()
	s.GrossLoss = loss.Round(2).InexactFloat64()
	s.NetProfit = gross.Sub(loss).Round(2).InexactFloat64()
	s.TotalPips = pips.Round(1).InexactFloat64()
	if !loss.IsZero() {
		s.ProfitFactor = gross.Div(loss).Round(2).InexactFloat64()
	}
	if s.Wins > 0 {
		s.AverageWin = gross.Div(decimal.NewFromInt(int64(s.Wins))).Round(2).InexactFloat64()
	}
	if s.Losses > 0 {
		s.AverageLoss = loss.Div(decimal.NewFromInt(int64(s.Losses))).Round(2).InexactFloat64()
	}
	if rrrCount > 0 {
		s.AverageRRR = rrrSum.Div(decimal.NewFromInt(int64(rrrCount))).Round(2).InexactFloat64()
	}
	return s
}
