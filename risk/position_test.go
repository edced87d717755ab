package risk

import (
	"testing"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/stretchr/testify/assert"
)

func TestPositionSize_SimpleUSDQuote(t *testing.T) {
	t.Parallel()

	got := PositionSize(Inputs{
		Symbol:         "EURUSD",
		AccountBalance: 10000,
		RiskPercent:    1,
		EntryPrice:     1.1000,
		StopLoss:       1.0950,
	})

	assert.Equal(t, 0.2, got.Lots)
	assert.Equal(t, 20000.0, got.Units)
	assert.Equal(t, 50.0, got.StopPips)
	assert.Equal(t, 100.0, got.RiskAmount)
	assert.True(t, got.Outcome.Exact())
}

func TestPositionSize_StopAboveEntry(t *testing.T) {
	t.Parallel()

	got := PositionSize(Inputs{
		Symbol:         "EURUSD",
		AccountBalance: 2000,
		RiskPercent:    0.5,
		EntryPrice:     1.0000,
		StopLoss:       1.0100,
	})

	assert.Equal(t, 100.0, got.StopPips)
	assert.Equal(t, 10.0, got.RiskAmount)
	assert.Equal(t, 0.01, got.Lots)
}

func TestPositionSize_NonUSDQuoteIsEstimated(t *testing.T) {
	t.Parallel()

	got := PositionSize(Inputs{
		Symbol:         "USDJPY",
		AccountBalance: 1_000_000,
		RiskPercent:    2,
		EntryPrice:     150.00,
		StopLoss:       149.50,
	})

	assert.Equal(t, 50.0, got.StopPips)
	assert.Equal(t, 20000.0, got.RiskAmount)
	assert.Equal(t, 0.4, got.Lots)
	assert.Equal(t, market.Estimated, got.Outcome.Status)
	assert.True(t, got.Outcome.Has(market.ReasonUnconvertedSize))
}

func TestPositionSize_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Inputs
		reason market.Reason
	}{
		{"zero_distance", Inputs{Symbol: "EURUSD", AccountBalance: 10000, RiskPercent: 1, EntryPrice: 1.1, StopLoss: 1.1}, market.ReasonZeroRiskDistance},
		{"zero_balance", Inputs{Symbol: "EURUSD", RiskPercent: 1, EntryPrice: 1.1, StopLoss: 1.09}, market.ReasonInvalidBalance},
		{"zero_pct", Inputs{Symbol: "EURUSD", AccountBalance: 10000, EntryPrice: 1.1, StopLoss: 1.09}, market.ReasonInvalidRiskPct},
		{"pct_over_100", Inputs{Symbol: "EURUSD", AccountBalance: 10000, RiskPercent: 101, EntryPrice: 1.1, StopLoss: 1.09}, market.ReasonInvalidRiskPct},
		{"no_stop", Inputs{Symbol: "EURUSD", AccountBalance: 10000, RiskPercent: 1, EntryPrice: 1.1}, market.ReasonInvalidPrice},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PositionSize(tt.in)
			assert.False(t, got.Outcome.Valid())
			assert.True(t, got.Outcome.Has(tt.reason), got.Outcome.String())
			assert.Zero(t, got.Lots)
		})
	}
}
