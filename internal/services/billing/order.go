package billing

import (
	"dairy-billing-backend/internal/models"
	"dairy-billing-backend/internal/services/pricing"

	"github.com/shopspring/decimal"
)

// Quantities maps a product id to the requested quantity.
type Quantities map[string]int

// Order is the priced result of an order draft.
type Order struct {
	Items    []models.OrderItem `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

func (o Order) Empty() bool { return len(o.Items) == 0 }

// BuildOrder prices every catalog product with a positive quantity for the
// given customer. Lines follow catalog order. Neither input is modified.
func BuildOrder(products []models.Product, customer *models.Customer, quantities Quantities) (Order, error) {
	order := Order{Items: []models.OrderItem{}, Subtotal: decimal.Zero}
	if customer == nil {
		return order, ErrMissingCustomer
	}
	for _, p := range products {
		qty := quantities[p.ID]
		if qty <= 0 {
			continue
		}
		price, err := pricing.ResolvePrice(p, customer)
		if err != nil {
			return Order{Items: []models.OrderItem{}, Subtotal: decimal.Zero}, err
		}
		item := models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Variant:   p.Variant,
			Quantity:  qty,
			Price:     price,
		}
		order.Items = append(order.Items, item)
		order.Subtotal = order.Subtotal.Add(item.LineTotal())
	}
	return order, nil
}
