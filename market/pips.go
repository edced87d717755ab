package market

import "math"

func pipSize(decimals int) float64 {
	return math.Pow(10, -float64(decimals))
}

// PipValue returns the price increment of one pip, 10^-decimals, for the
// pair. Unknown symbols fall back to DefaultPipDecimalPlace and are
// reported as Estimated.
func PipValue(symbol string) (float64, Outcome) {
	p, ok := LookupPair(symbol)
	if !ok {
		return pipSize(DefaultPipDecimalPlace), EstimatedBy(ReasonUnknownPair)
	}
	return pipSize(p.PipDecimalPlace), Exact()
}

// Pips returns the unrounded price move from entry to exit measured in
// pips. The sign follows the price, not the trade direction.
func Pips(symbol string, entry, exit float64) (float64, Outcome) {
	pip, out := PipValue(symbol)
	return (exit - entry) / pip, out
}
