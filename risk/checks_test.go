package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	base := Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1100)}

	tests := []struct {
		name    string
		plan    Plan
		balance float64
		pnl     PnLSnapshot
		allowed bool
		codes   []string
	}{
		{
			name:    "within_policy",
			plan:    base,
			balance: 10000,
			allowed: true,
		},
		{
			name:    "risk_too_high",
			plan:    Plan{Symbol: "EURUSD", Lots: 0.5, Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1100)},
			balance: 10000,
			codes:   []string{"RISK_TOO_HIGH", "RISK_OVER_DEFAULT"},
		},
		{
			name:    "over_default_only",
			plan:    Plan{Symbol: "EURUSD", Lots: 0.3, Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1100)},
			balance: 10000,
			codes:   []string{"RISK_OVER_DEFAULT"},
		},
		{
			name:    "rr_too_low",
			plan:    Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1050)},
			balance: 10000,
			codes:   []string{"RR_TOO_LOW"},
		},
		{
			name:    "no_target",
			plan:    Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000, Stop: 1.0950},
			balance: 10000,
			codes:   []string{"RR_UNKNOWN"},
		},
		{
			name:    "daily_loss_hit",
			plan:    base,
			balance: 10000,
			pnl:     PnLSnapshot{DayRealized: -300, WeekRealized: -300},
			codes:   []string{"DAILY_LOSS_LIMIT"},
		},
		{
			name:    "weekly_loss_hit",
			plan:    base,
			balance: 10000,
			pnl:     PnLSnapshot{DayRealized: -10, WeekRealized: -650},
			codes:   []string{"WEEKLY_LOSS_LIMIT"},
		},
		{
			name:    "no_stop",
			plan:    Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000},
			balance: 10000,
			codes:   []string{"NO_STOP_OR_ENTRY"},
		},
		{
			name:    "no_lots",
			plan:    Plan{Symbol: "EURUSD", Entry: 1.1000, Stop: 1.0950},
			balance: 10000,
			codes:   []string{"NO_LOTS"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Evaluate(DefaultPolicy(), tt.plan, tt.balance, tt.pnl)
			assert.Equal(t, tt.allowed, d.Allowed, "%+v", d.Violations)
			for _, c := range tt.codes {
				assert.True(t, d.Has(c), "missing %s in %+v", c, d.Violations)
			}
			if tt.allowed {
				assert.Empty(t, d.Violations)
			}
		})
	}
}

func TestEvaluateFigures(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1150)}, 10000, PnLSnapshot{})
	assert.Equal(t, 100.0, d.PlannedRisk)
	assert.InDelta(t, 1.0, d.PlannedRiskPct, 1e-9)
	assert.Equal(t, 3.0, d.PlannedRR)
	assert.True(t, d.Outcome.Exact())
}

func TestEvaluateRejectsNonFinitePlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan Plan
		code string
	}{
		{"nan_stop", Plan{Symbol: "EURUSD", Lots: 0.2, Entry: 1.1000, Stop: math.NaN(), TakeProfit: ptr(1.1100)}, "NO_STOP_OR_ENTRY"},
		{"inf_entry", Plan{Symbol: "EURUSD", Lots: 0.2, Entry: math.Inf(1), Stop: 1.0950, TakeProfit: ptr(1.1100)}, "NO_STOP_OR_ENTRY"},
		{"nan_lots", Plan{Symbol: "EURUSD", Lots: math.NaN(), Entry: 1.1000, Stop: 1.0950, TakeProfit: ptr(1.1100)}, "NO_LOTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := Evaluate(DefaultPolicy(), tt.plan, 10000, PnLSnapshot{})
			assert.False(t, d.Allowed)
			assert.Len(t, d.Violations, 1)
			assert.True(t, d.Has(tt.code), "%+v", d.Violations)
			assert.Zero(t, d.PlannedRisk)
		})
	}
}
