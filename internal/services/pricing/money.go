package pricing

import "github.com/shopspring/decimal"

// MaxAmount is the largest value a decimal(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// ValidAmount reports whether d can be stored as money: not negative, at most
// MaxAmount and no more than two decimal places.
func ValidAmount(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}
	if d.IsZero() {
		return true
	}
	// bound the exponent before comparing; Cmp and Round rescale to it
	exp := d.Exponent()
	if exp > 10 || exp < -20 {
		return false
	}
	return d.LessThanOrEqual(MaxAmount) && d.Equal(d.Round(2))
}
