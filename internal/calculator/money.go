package calculator

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Money converts v to a decimal rounded half-up to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Round2 rounds v half-up to 2 decimal places.
func Round2(v float64) float64 {
	return Money(v).InexactFloat64()
}

// percentOf returns base * rate / 100, unrounded.
func percentOf(base decimal.Decimal, rate float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}
