package pnl

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       Inputs
		profit   float64
		pips     float64
		pipValue float64
		win      bool
		status   market.Status
		reason   market.Reason
	}{
		{
			name:     "eurusd_buy_win",
			in:       Inputs{Symbol: "EURUSD", Direction: Buy, EntryPrice: 1.1000, ExitPrice: 1.1050, LotSize: 1},
			profit:   500.00,
			pips:     50.0,
			pipValue: 10.0,
			win:      true,
			status:   market.Computed,
		},
		{
			name:     "eurusd_sell_loss",
			in:       Inputs{Symbol: "EUR_USD", Direction: Sell, EntryPrice: 1.1000, ExitPrice: 1.1050, LotSize: 2},
			profit:   -1000.00,
			pips:     -50.0,
			pipValue: 10.0,
			win:      false,
			status:   market.Computed,
		},
		{
			// 50 pips * 0.01 * 100,000 = 50,000 JPY at 109.50 JPY per USD
			name:     "usdjpy_sell_converted",
			in:       Inputs{Symbol: "USDJPY", Direction: Sell, EntryPrice: 110.00, ExitPrice: 109.50, LotSize: 1},
			profit:   456.62,
			pips:     50.0,
			pipValue: 1000.0,
			win:      true,
			status:   market.Computed,
		},
		{
			name:     "usdjpy_buy_mini_lot",
			in:       Inputs{Symbol: "USDJPY", Direction: Buy, EntryPrice: 150.00, ExitPrice: 149.70, LotSize: 0.1},
			profit:   -20.04,
			pips:     -30.0,
			pipValue: 1000.0,
			win:      false,
			status:   market.Computed,
		},
		{
			name:     "flat_is_not_a_win",
			in:       Inputs{Symbol: "GBPUSD", Direction: Buy, EntryPrice: 1.2500, ExitPrice: 1.2500, LotSize: 1},
			profit:   0,
			pips:     0,
			pipValue: 10.0,
			win:      false,
			status:   market.Computed,
		},
		{
			name:     "cross_pair_unconverted",
			in:       Inputs{Symbol: "EURGBP", Direction: Buy, EntryPrice: 0.8500, ExitPrice: 0.8550, LotSize: 0.5},
			profit:   250.00,
			pips:     50.0,
			pipValue: 10.0,
			win:      true,
			status:   market.Estimated,
			reason:   market.ReasonCrossPair,
		},
		{
			name:     "unknown_pair_default_pip",
			in:       Inputs{Symbol: "XAGUSD", Direction: Buy, EntryPrice: 1.0000, ExitPrice: 1.0010, LotSize: 1},
			profit:   100.00,
			pips:     10.0,
			pipValue: 10.0,
			win:      true,
			status:   market.Estimated,
			reason:   market.ReasonUnknownPair,
		},
		{
			name:     "non_usd_account",
			in:       Inputs{Symbol: "EURUSD", Direction: Buy, EntryPrice: 1.1000, ExitPrice: 1.1010, LotSize: 1, AccountCurrency: "EUR"},
			profit:   100.00,
			pips:     10.0,
			pipValue: 10.0,
			win:      true,
			status:   market.Estimated,
			reason:   market.ReasonAccountCurrency,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Calculate(tt.in)
			assert.Equal(t, tt.profit, got.Profit)
			assert.Equal(t, tt.pips, got.Pips)
			assert.InDelta(t, tt.pipValue, got.PipValue, 1e-9)
			assert.Equal(t, tt.win, got.IsWin)
			assert.Equal(t, tt.status, got.Outcome.Status)
			if tt.reason != "" {
				assert.True(t, got.Outcome.Has(tt.reason), got.Outcome.String())
			}
		})
	}
}

func TestCalculateInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Inputs
		reason market.Reason
	}{
		{"no_direction", Inputs{Symbol: "EURUSD", EntryPrice: 1.1, ExitPrice: 1.2, LotSize: 1}, market.ReasonInvalidDirection},
		{"zero_entry", Inputs{Symbol: "EURUSD", Direction: Buy, ExitPrice: 1.2, LotSize: 1}, market.ReasonInvalidPrice},
		{"nan_exit", Inputs{Symbol: "EURUSD", Direction: Buy, EntryPrice: 1.1, ExitPrice: math.NaN(), LotSize: 1}, market.ReasonInvalidPrice},
		{"negative_lots", Inputs{Symbol: "EURUSD", Direction: Sell, EntryPrice: 1.1, ExitPrice: 1.2, LotSize: -1}, market.ReasonInvalidLotSize},
		{"inf_lots", Inputs{Symbol: "EURUSD", Direction: Sell, EntryPrice: 1.1, ExitPrice: 1.2, LotSize: math.Inf(1)}, market.ReasonInvalidLotSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Calculate(tt.in)
			assert.False(t, got.Outcome.Valid())
			assert.True(t, got.Outcome.Has(tt.reason))
			assert.Zero(t, got.Profit)
			assert.False(t, got.IsWin)
		})
	}
}

func TestCalculateRoundingLaw(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	symbols := append(market.Symbols(), "UNKNOWN")

	for i := 0; i < 500; i++ {
		in := Inputs{
			Symbol:     symbols[rng.Intn(len(symbols))],
			Direction:  []Direction{Buy, Sell}[rng.Intn(2)],
			EntryPrice: 0.5 + rng.Float64()*200,
			ExitPrice:  0.5 + rng.Float64()*200,
			LotSize:    rng.Float64() * 50,
		}
		got := Calculate(in)
		require.True(t, got.Outcome.Valid())
		assert.Equal(t, market.Round(got.Profit, 2), got.Profit)
		assert.Equal(t, market.Round(got.Pips, 1), got.Pips)
		assert.Equal(t, got.Profit > 0, got.IsWin)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	t.Parallel()

	in := Inputs{Symbol: "GBPJPY", Direction: Sell, EntryPrice: 191.234, ExitPrice: 190.456, LotSize: 0.37}
	assert.Equal(t, Calculate(in), Calculate(in))
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Direction{"buy": Buy, "BUY": Buy, "long": Buy, " Sell ": Sell, "short": Sell} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("hold")
	assert.Error(t, err)
	assert.Equal(t, 0.0, Direction("hold").Sign())
}
