package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orgTrade() TradeRecord {
	stop, target := 1.0950, 1.1100
	rrr := 2.0
	return TradeRecord{
		ID:         "01HV0000000000000000000000",
		AccountID:  "ACC1",
		Symbol:     "EURUSD",
		Direction:  pnl.Buy,
		EntryPrice: 1.1000,
		ExitPrice:  1.1050,
		LotSize:    1,
		StopLoss:   &stop,
		TakeProfit: &target,
		OpenTime:   time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC),
		CloseTime:  time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC),
		Profit:     500,
		Pips:       50,
		PipValue:   10,
		IsWin:      true,
		RRR:        &rrr,
		Setup:      "breakout",
		Notes:      "held to target",
	}
}

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(orgTrade())

	assert.Contains(t, result, "** WIN EURUSD Buy (01HV0000)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HV0000000000000000000000")
	assert.Contains(t, result, ":ACCOUNT: ACC1")
	assert.Contains(t, result, ":LOTS: 1.00")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.10000")
	assert.Contains(t, result, ":EXIT_PRICE: 1.10500")
	assert.Contains(t, result, ":STOP_LOSS: 1.09500")
	assert.Contains(t, result, ":TAKE_PROFIT: 1.11000")
	assert.Contains(t, result, ":OPEN_TIME: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":CLOSE_TIME: 2024-03-15T14:20:30Z")
	assert.Contains(t, result, ":PIPS: 50.0")
	assert.Contains(t, result, ":PROFIT: 500.00")
	assert.Contains(t, result, ":RRR: 2.00")
	assert.NotContains(t, result, ":ESTIMATED:")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Setup\n- breakout")
	assert.Contains(t, result, "*** Notes\n- held to target")
	assert.Contains(t, result, "*** Review")
}

func TestFormatTradeOrgLossAndEstimated(t *testing.T) {
	t.Parallel()

	tr := orgTrade()
	tr.Symbol = "EURGBP"
	tr.Profit = -120.5
	tr.IsWin = false
	tr.StopLoss, tr.TakeProfit, tr.RRR = nil, nil, nil
	tr.Estimated = true
	tr.Reasons = []market.Reason{market.ReasonCrossPair}

	result := FormatTradeOrg(tr)
	assert.True(t, strings.HasPrefix(result, "** LOSS EURGBP Buy"))
	assert.Contains(t, result, ":PROFIT: -120.50")
	assert.Contains(t, result, ":ESTIMATED: cross_pair")
	assert.NotContains(t, result, ":STOP_LOSS:")
	assert.NotContains(t, result, ":RRR:")
}

func TestFormatTradeOrgJPYDecimals(t *testing.T) {
	t.Parallel()

	tr := orgTrade()
	tr.Symbol = "USDJPY"
	tr.EntryPrice, tr.ExitPrice = 110, 109.5
	tr.StopLoss, tr.TakeProfit = nil, nil

	result := FormatTradeOrg(tr)
	assert.Contains(t, result, ":ENTRY_PRICE: 110.000")
	assert.Contains(t, result, ":EXIT_PRICE: 109.500")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	a := orgTrade()
	b := orgTrade()
	b.ID = "01HV1111111111111111111111"
	b.Symbol = "GBPUSD"

	result := FormatTradesOrg([]TradeRecord{a, b})
	assert.Contains(t, result, "EURUSD")
	assert.Contains(t, result, "GBPUSD")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil))
	assert.NotContains(t, FormatTradesOrg([]TradeRecord{orgTrade()}), "\n\n\n")
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID gets truncated", "01HV0000000000000000000000", "01HV0000"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shortID(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.LessOrEqual(t, len(result), 8)
		})
	}
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	lines := strings.Split(FormatTradeOrg(orgTrade()), "\n")
	require.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "** "))

	index := func(want string) int {
		for i, line := range lines {
			if line == want {
				return i
			}
		}
		return -1
	}
	props, end := index(":PROPERTIES:"), index(":END:")
	setup, notes, review := index("*** Setup"), index("*** Notes"), index("*** Review")

	assert.Equal(t, 1, props)
	assert.Greater(t, end, props)
	assert.Greater(t, setup, end)
	assert.Greater(t, notes, setup)
	assert.Greater(t, review, notes)
}
