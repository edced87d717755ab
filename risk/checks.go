package risk

import (
	"fmt"

	"github.com/rustyeddy/fxjournal/market"
)

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation

	PlannedRisk    float64
	PlannedRiskPct float64
	PlannedRR      float64

	// Outcome of the risk and RR figures above.
	Outcome market.Outcome
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Has reports whether a violation with code was raised.
func (d Decision) Has(code string) bool {
	for _, v := range d.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Evaluate checks a planned trade against the policy, the account
// balance and the realized P/L so far.
func Evaluate(p Policy, plan Plan, balance float64, pnl PnLSnapshot) Decision {
	d := Decision{Allowed: true}

	if !market.Finite(plan.Stop) || plan.Stop <= 0 || !market.Finite(plan.Entry) || plan.Entry <= 0 {
		d.add("NO_STOP_OR_ENTRY", "entry/stop must be set")
		return d
	}
	if !market.Finite(plan.Lots) || plan.Lots <= 0 {
		d.add("NO_LOTS", "lot size must be positive")
		return d
	}

	d.PlannedRisk, d.Outcome = PlannedRisk(plan.Symbol, plan.Lots, plan.Entry, plan.Stop)
	if balance > 0 {
		d.PlannedRiskPct = 100 * d.PlannedRisk / balance
	}

	rr, rrOut := RRR(&plan.Stop, plan.TakeProfit, plan.Entry)
	d.PlannedRR = rr

	if balance <= 0 {
		d.add("NO_BALANCE", "account balance must be positive")
	}
	if d.PlannedRiskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds max %.2f%%", d.PlannedRiskPct, p.MaxRiskPct))
	}
	if d.PlannedRiskPct > p.DefaultRiskPct {
		// Allowed up to MaxRiskPct, but only as an explicit override.
		d.add("RISK_OVER_DEFAULT",
			fmt.Sprintf("planned risk %.2f%% exceeds default %.2f%% (requires override)",
				d.PlannedRiskPct, p.DefaultRiskPct))
	}

	switch {
	case !rrOut.Valid():
		d.add("RR_UNKNOWN", fmt.Sprintf("cannot compute RR: %s", rrOut))
	case d.PlannedRR < p.MinRR:
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.1f below minimum %.1f", d.PlannedRR, p.MinRR))
	}

	// Circuit breakers (loss limits)
	dayLimit := -p.MaxDailyLossPct / 100 * balance
	if balance > 0 && p.MaxDailyLossPct > 0 && pnl.DayRealized <= dayLimit {
		d.add("DAILY_LOSS_LIMIT", fmt.Sprintf("day realized %.2f <= limit %.2f", pnl.DayRealized, dayLimit))
	}
	weekLimit := -p.MaxWeeklyLossPct / 100 * balance
	if balance > 0 && p.MaxWeeklyLossPct > 0 && pnl.WeekRealized <= weekLimit {
		d.add("WEEKLY_LOSS_LIMIT", fmt.Sprintf("week realized %.2f <= limit %.2f", pnl.WeekRealized, weekLimit))
	}

	return d
}
