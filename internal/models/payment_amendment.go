package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentAmendment records one change of a bill's paid amount.
type PaymentAmendment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BillID       string          `gorm:"size:64;index" json:"bill_id"`
	PreviousPaid decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"previous_paid"`
	NewPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"new_paid"`
	CreatedAt    time.Time       `json:"created_at"`
}
