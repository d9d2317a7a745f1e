package pricing

import (
	"errors"

	"dairy-billing-backend/internal/models"

	"github.com/shopspring/decimal"
)

// ErrMissingCustomer is returned when a price is asked for without a customer.
var ErrMissingCustomer = errors.New("no customer selected")

// ResolvePrice returns the customer's override for the product when it is
// positive, and the product's standard price otherwise.
func ResolvePrice(product models.Product, customer *models.Customer) (decimal.Decimal, error) {
	if customer == nil {
		return decimal.Zero, ErrMissingCustomer
	}
	if override, ok := customer.Overrides()[product.ID]; ok && override.IsPositive() {
		return override, nil
	}
	return product.Price, nil
}

// SanitizeOverrides drops blank keys, non-positive prices and prices that do
// not fit a money column. The result is
// nil when nothing is left, which reads as "standard prices".
func SanitizeOverrides(in models.PriceOverrides) models.PriceOverrides {
	var out models.PriceOverrides
	for productID, price := range in {
		if productID == "" || !price.IsPositive() || !ValidAmount(price) {
			continue
		}
		if out == nil {
			out = make(models.PriceOverrides, len(in))
		}
		out[productID] = price
	}
	return out
}
