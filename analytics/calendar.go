package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/shopspring/decimal"
)

// DayCell is one day of the P&L calendar.
type DayCell struct {
	Date   time.Time // midnight in the calendar's location
	Profit float64
	Trades int
	Wins   int
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Calendar groups records by close day in loc, sorted by date. Days
// without trades are omitted.
func Calendar(records []journal.TradeRecord, loc *time.Location) []DayCell {
	if loc == nil {
		loc = time.UTC
	}
	sums := map[time.Time]decimal.Decimal{}
	cells := map[time.Time]*DayCell{}
	for _, r := range records {
		d := dayOf(r.CloseTime, loc)
		c, ok := cells[d]
		if !ok {
			c = &DayCell{Date: d}
			cells[d] = c
		}
		c.Trades++
		if r.IsWin {
			c.Wins++
		}
		sums[d] = sums[d].Add(decimal.NewFromFloat(r.Profit))
	}

	out := make([]DayCell, 0, len(cells))
	for d, c := range cells {
		c.Profit = sums[d].Round(2).InexactFloat64()
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Month returns one cell per day of year/month, filled from cells.
func Month(cells []DayCell, year int, month time.Month, loc *time.Location) []DayCell {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[int]DayCell, len(cells))
	for _, c := range cells {
		d := c.Date.In(loc)
		if d.Year() == year && d.Month() == month {
			byDay[d.Day()] = c
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	out := make([]DayCell, days)
	for i := range out {
		if c, ok := byDay[i+1]; ok {
			out[i] = c
			continue
		}
		out[i] = DayCell{Date: first.AddDate(0, 0, i)}
	}
	return out
}
