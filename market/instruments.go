// market/instruments.go
package market

import (
	"sort"
	"strings"
)

// LotSize is the number of base-currency units in one standard lot.
const LotSize = 100_000.0

// DefaultPipDecimalPlace is used for symbols missing from Pairs.
const DefaultPipDecimalPlace = 4

// CurrencyPairInfo describes the pip convention of a pair and which of
// its legs, if any, is USD. USDIsQuote and USDIsBase are never both true;
// a cross pair has both false.
type CurrencyPairInfo struct {
	Symbol          string
	Base            string
	Quote           string
	PipDecimalPlace int
	USDIsQuote      bool
	USDIsBase       bool
}

// Cross reports whether neither leg of the pair is USD.
func (p CurrencyPairInfo) Cross() bool {
	return !p.USDIsQuote && !p.USDIsBase
}

func pair(base, quote string, decimals int) CurrencyPairInfo {
	return CurrencyPairInfo{
		Symbol:          base + quote,
		Base:            base,
		Quote:           quote,
		PipDecimalPlace: decimals,
		USDIsQuote:      quote == "USD",
		USDIsBase:       base == "USD",
	}
}

// Pairs is the fixed registry of known pairs keyed by normalized symbol.
// It is built once at init and never mutated.
var Pairs = func() map[string]CurrencyPairInfo {
	list := []CurrencyPairInfo{
		// USD quoted
		pair("EUR", "USD", 4),
		pair("GBP", "USD", 4),
		pair("AUD", "USD", 4),
		pair("NZD", "USD", 4),

		// USD base
		pair("USD", "JPY", 2),
		pair("USD", "CHF", 4),
		pair("USD", "CAD", 4),
		pair("USD", "SGD", 4),
		pair("USD", "HKD", 4),
		pair("USD", "MXN", 4),
		pair("USD", "ZAR", 4),

		// crosses
		pair("EUR", "GBP", 4),
		pair("EUR", "JPY", 2),
		pair("EUR", "CHF", 4),
		pair("EUR", "AUD", 4),
		pair("EUR", "CAD", 4),
		pair("GBP", "JPY", 2),
		pair("GBP", "CHF", 4),
		pair("GBP", "AUD", 4),
		pair("AUD", "JPY", 2),
		pair("AUD", "NZD", 4),
		pair("NZD", "JPY", 2),
		pair("CAD", "JPY", 2),
		pair("CHF", "JPY", 2),
	}

	m := make(map[string]CurrencyPairInfo, len(list))
	for _, p := range list {
		m[p.Symbol] = p
	}
	return m
}()

// NormalizeSymbol upper-cases a symbol and strips the separators people
// commonly type, so "eur/usd", "EUR_USD" and "EURUSD" are the same pair.
func NormalizeSymbol(symbol string) string {
	var b strings.Builder
	b.Grow(len(symbol))
	for _, r := range strings.ToUpper(symbol) {
		switch r {
		case '/', '_', '-', ' ', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LookupPair returns the registry entry for symbol.
func LookupPair(symbol string) (CurrencyPairInfo, bool) {
	p, ok := Pairs[NormalizeSymbol(symbol)]
	return p, ok
}

// Symbols returns the registered symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(Pairs))
	for s := range Pairs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
