package repository

import (
	"dairy-billing-backend/internal/models"

	"gorm.io/gorm"
)

type PaymentAmendmentRepository struct {
	db *gorm.DB
}

func NewPaymentAmendmentRepository(db *gorm.DB) *PaymentAmendmentRepository {
	return &PaymentAmendmentRepository{db: db}
}

func (r *PaymentAmendmentRepository) WithTx(tx *gorm.DB) *PaymentAmendmentRepository {
	return &PaymentAmendmentRepository{db: tx}
}

func (r *PaymentAmendmentRepository) Create(a *models.PaymentAmendment) error {
	return r.db.Create(a).Error
}

// ListByBill returns amendments oldest first
func (r *PaymentAmendmentRepository) ListByBill(billID string) ([]models.PaymentAmendment, error) {
	var out []models.PaymentAmendment
	err := r.db.Where("bill_id = ?", billID).Order("created_at ASC").Find(&out).Error
	return out, err
}
