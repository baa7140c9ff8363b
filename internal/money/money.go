// Package money fixes the single rounding policy used by every rating
// component: amounts are int64 cents, rounded half-up at the line level.
package money

import "math"

// RoundCents converts a raw cent value to a whole-cent amount using
// round-half-up. All charge lines go through this one function.
func RoundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}

// LineAmount prices a quantity at a per-unit rate in cents.
func LineAmount(quantity float64, rateCents int64) int64 {
	return RoundCents(quantity * float64(rateCents))
}

// Quantize3 rounds a quantity to three decimal places, half-up. Billable
// sanitation volumes are stored at this precision.
func Quantize3(qty float64) float64 {
	return math.Floor(qty*1000+0.5) / 1000
}
