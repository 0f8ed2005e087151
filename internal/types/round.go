// README: Decimal rounding shared by fee and route totals.
package types

import "math"

// Round rounds v half-up on the scaled integer: round(v*10^n)/10^n.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Round1 is used for every mileage figure.
func Round1(v float64) float64 { return Round(v, 1) }

// Round2 is used for money.
func Round2(v float64) float64 { return Round(v, 2) }

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
