package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, both over the API and inside snapshot columns
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Name      string          `gorm:"not null;index" json:"name"`
	Variant   string          `gorm:"not null" json:"variant"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
