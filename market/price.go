package market

import (
	"math"

	"github.com/shopspring/decimal"
)

func decFromFloat(val float64) decimal.Decimal {
	if !Finite(val) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(val)
}

// Round rounds x to places decimal places, half away from zero.
// The rounding is done on the shortest decimal representation of x, so
// 1.005 rounds to 1.01 rather than falling victim to binary error.
// Non-finite input rounds to zero.
func Round(x float64, places int32) float64 {
	f, _ := decFromFloat(x).Round(places).Float64()
	return f
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// validPrice is true for finite, strictly positive prices.
func validPrice(p float64) bool {
	return Finite(p) && p > 0
}
