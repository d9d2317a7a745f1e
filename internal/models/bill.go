package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderItem is one bill line. Product fields are copied at order time so
// later catalog edits never reach an issued bill.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Variant   string          `json:"variant"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"` // unit price at the time of order
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Bill struct {
	ID         string                               `gorm:"primaryKey;size:64" json:"id"`
	CustomerID string                               `gorm:"index" json:"customer_id"`
	Customer   datatypes.JSONType[CustomerSnapshot] `json:"customer"`
	Items      datatypes.JSONType[[]OrderItem]      `json:"items"`
	Total      decimal.Decimal                      `gorm:"type:decimal(12,2);not null" json:"total"`
	PaidAmount decimal.Decimal                      `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	Date       time.Time                            `gorm:"index" json:"date"`
	Seq        uint64                               `gorm:"index" json:"-"` // ledger position, set on append
}

func (b *Bill) Lines() []OrderItem {
	return b.Items.Data()
}

func (b *Bill) CustomerName() string {
	return b.Customer.Data().Name
}

// Due is what is still owed on the bill; overpayment never makes it negative.
func (b *Bill) Due() decimal.Decimal {
	return decimal.Max(decimal.Zero, b.Total.Sub(b.PaidAmount))
}
