package risk

// Policy limits are percentages of the account balance (1 means 1%).
type Policy struct {
	// Risk limits
	DefaultRiskPct float64 // 1
	MaxRiskPct     float64 // 2

	// Circuit breakers
	MaxDailyLossPct  float64 // 3
	MaxWeeklyLossPct float64 // 6

	// Trade constraints
	MinRR float64 // 1.5
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultRiskPct:   1,
		MaxRiskPct:       2,
		MaxDailyLossPct:  3,
		MaxWeeklyLossPct: 6,
		MinRR:            1.5,
	}
}

// Plan is a trade the user is about to place.
type Plan struct {
	Symbol     string
	Lots       float64
	Entry      float64
	Stop       float64
	TakeProfit *float64
}

type PnLSnapshot struct {
	DayRealized  float64 // realized profit for the day in account currency
	WeekRealized float64 // realized profit for the week
}
