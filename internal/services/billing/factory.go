package billing

import (
	"fmt"
	"time"

	"dairy-billing-backend/internal/models"
	"dairy-billing-backend/internal/services/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CreateBill turns a priced order into a bill. The total is fixed here and
// the bill starts fully paid.
func CreateBill(customer *models.Customer, items []models.OrderItem, subtotal decimal.Decimal, now time.Time) (*models.Bill, error) {
	if customer == nil {
		return nil, ErrMissingCustomer
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !pricing.ValidAmount(subtotal) {
		return nil, fmt.Errorf("%w: order total %s exceeds %s", ErrInvalidAmount, subtotal, pricing.MaxAmount)
	}

	lines := make([]models.OrderItem, len(items))
	copy(lines, items)

	return &models.Bill{
		ID:         newBillID(),
		CustomerID: customer.ID,
		Customer:   datatypes.NewJSONType(customer.Snapshot()),
		Items:      datatypes.NewJSONType(lines),
		Total:      subtotal,
		PaidAmount: subtotal,
		Date:       now,
	}, nil
}

// bill ids are time ordered (uuid v7)
func newBillID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "bill-" + id.String()
}
