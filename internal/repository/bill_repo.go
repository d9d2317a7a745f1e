package repository

import (
	"dairy-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Expose DB for transactions
func (r *BillRepository) DB() *gorm.DB {
	return r.db
}

func (r *BillRepository) WithTx(tx *gorm.DB) *BillRepository {
	return &BillRepository{db: tx}
}

// Append stores b after every bill already in the ledger
func (r *BillRepository) Append(b *models.Bill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Raw("SELECT COALESCE(MAX(seq), 0) FROM bills").Scan(&last).Error; err != nil {
			return err
		}
		b.Seq = uint64(last) + 1
		return tx.Create(b).Error
	})
}

// GetByID fetch a single bill by ID
func (r *BillRepository) GetByID(id string) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.First(&bill, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// List returns the ledger, last appended first
func (r *BillRepository) List() ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Order("seq DESC").Order("id DESC").Find(&bills).Error
	return bills, err
}

// UpdatePaidAmount touches paid_amount only; every other column of a bill is fixed
func (r *BillRepository) UpdatePaidAmount(id string, paid decimal.Decimal) error {
	result := r.db.Model(&models.Bill{}).Where("id = ?", id).Update("paid_amount", paid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
