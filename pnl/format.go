package pnl

import (
	"strconv"
	"strings"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var enUS = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount the way an en-US currency formatter
// does: "$1,234.56", "-$1,234.56", "¥1,235", "CHF 1,234.56". Symbols
// and minor-unit digits come from CLDR; codes that are not ISO 4217 are
// printed as the code with two decimals.
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultAccountCurrency
	}

	sym, scale := code+" ", 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		sym = enUS.Sprint(currency.Symbol(unit))
		if sym == unit.String() {
			sym += " "
		}
	}

	d := decimal.Zero
	if market.Finite(amount) {
		d = decimal.NewFromFloat(amount).Round(int32(scale))
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + sym + enUS.Sprint(number.Decimal(d.Abs().InexactFloat64(), number.Scale(scale)))
}

// FormatPips fixes one decimal place and prefixes "+" for gains.
func FormatPips(pips float64) string {
	p := market.Round(pips, 1)
	s := strconv.FormatFloat(p, 'f', 1, 64)
	if p > 0 {
		return "+" + s
	}
	return s
}
