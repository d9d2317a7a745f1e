package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PriceOverrides maps a product id to the price this customer pays for it.
type PriceOverrides map[string]decimal.Decimal

// Clone returns an independent copy; nil stays nil.
func (o PriceOverrides) Clone() PriceOverrides {
	if o == nil {
		return nil
	}
	out := make(PriceOverrides, len(o))
	for id, price := range o {
		out[id] = price
	}
	return out
}

type Customer struct {
	ID             string                             `gorm:"primaryKey;size:64" json:"id"`
	Name           string                             `gorm:"not null;index" json:"name"`
	PriceOverrides datatypes.JSONType[PriceOverrides] `json:"price_overrides"`
	CreatedAt      time.Time                          `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time                          `json:"updated_at"`
}

func (c *Customer) Overrides() PriceOverrides {
	return c.PriceOverrides.Data()
}

// Snapshot copies the parts of the customer a bill keeps.
func (c *Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		ID:             c.ID,
		Name:           c.Name,
		PriceOverrides: c.Overrides().Clone(),
	}
}

// CustomerSnapshot is the customer as it was when a bill was issued.
type CustomerSnapshot struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	PriceOverrides PriceOverrides `json:"price_overrides,omitempty"`
}
