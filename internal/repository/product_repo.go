package repository

import (
	"dairy-billing-backend/internal/models"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the catalog in creation order
func (r *ProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Save(p *models.Product) error {
	return r.db.Save(p).Error
}

// Delete removes the product; gorm.ErrRecordNotFound when nothing matched
func (r *ProductRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
