package analytics

import (
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/risk"
	"github.com/shopspring/decimal"
)

// StartOfWeek returns Monday 00:00 of the week containing t in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	d := dayOf(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// Realized sums profit closed today and this week (Monday start) as of
// now in loc. Trades closing after now are ignored.
func Realized(records []journal.TradeRecord, now time.Time, loc *time.Location) risk.PnLSnapshot {
	if loc == nil {
		loc = time.UTC
	}
	day := dayOf(now, loc)
	week := StartOfWeek(now, loc)

	var daySum, weekSum decimal.Decimal
	for _, r := range records {
		ct := r.CloseTime
		if ct.After(now) || ct.Before(week) {
			continue
		}
		p := decimal.NewFromFloat(r.Profit)
		weekSum = weekSum.Add(p)
		if !ct.Before(day) {
			daySum = daySum.Add(p)
		}
	}
	return risk.PnLSnapshot{
		DayRealized:  daySum.Round(2).InexactFloat64(),
		WeekRealized: weekSum.Round(2).InexactFloat64(),
	}
}
