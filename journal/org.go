package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/market"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode entry. Structured
// facts go in the PROPERTIES drawer; the narrative headings hold the
// setup and notes.
func FormatTradeOrg(t TradeRecord) string {
	open := t.OpenTime.UTC().Format(time.RFC3339)
	closed := t.CloseTime.UTC().Format(time.RFC3339)
	decimals := market.DefaultPipDecimalPlace + 1
	if info, ok := market.LookupPair(t.Symbol); ok {
		decimals = info.PipDecimalPlace + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", outcomeWord(t), t.Symbol, t.Direction, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":ACCOUNT: %s\n", t.AccountID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":LOTS: %.2f\n", t.LotSize)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.*f\n", decimals, t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %.*f\n", decimals, t.ExitPrice)
	if t.StopLoss != nil {
		fmt.Fprintf(&b, ":STOP_LOSS: %.*f\n", decimals, *t.StopLoss)
	}
	if t.TakeProfit != nil {
		fmt.Fprintf(&b, ":TAKE_PROFIT: %.*f\n", decimals, *t.TakeProfit)
	}
	fmt.Fprintf(&b, ":OPEN_TIME: %s\n", open)
	fmt.Fprintf(&b, ":CLOSE_TIME: %s\n", closed)
	fmt.Fprintf(&b, ":PIPS: %.1f\n", t.Pips)
	fmt.Fprintf(&b, ":PROFIT: %.2f\n", t.Profit)
	if t.RRR != nil {
		fmt.Fprintf(&b, ":RRR: %.2f\n", *t.RRR)
	}
	if t.Estimated {
		fmt.Fprintf(&b, ":ESTIMATED: %s\n", joinReasons(t.Reasons))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "*** Setup\n- %s\n\n", t.Setup)
	fmt.Fprintf(&b, "*** Notes\n- %s\n\n", t.Notes)
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func outcomeWord(t TradeRecord) string {
	switch {
	case t.IsWin:
		return "WIN"
	case t.Profit < 0:
		return "LOSS"
	default:
		return "FLAT"
	}
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
