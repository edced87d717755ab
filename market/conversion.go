package market

// ConversionRate returns the multiplier that turns quote-currency profit
// into USD at currentPrice.
//
//   - USD quoted (EURUSD): currentPrice
//   - USD base (USDJPY): 1 / currentPrice
//   - cross (EURGBP) or unknown pair: 1, Estimated
//
// Cross pairs would need a live rate for the quote leg, which is not
// available here, so the rate of 1 is flagged rather than hidden.
func ConversionRate(symbol string, currentPrice float64) (float64, Outcome) {
	p, ok := LookupPair(symbol)
	if !ok {
		return 1, EstimatedBy(ReasonUnknownPair)
	}

	switch {
	case p.USDIsQuote:
		return currentPrice, Exact()
	case p.USDIsBase:
		if !validPrice(currentPrice) {
			return 0, InvalidBy(ReasonInvalidPrice)
		}
		// USDJPY gives JPY per USD; we want USD per JPY.
		return 1.0 / currentPrice, Exact()
	default:
		return 1, EstimatedBy(ReasonCrossPair)
	}
}
