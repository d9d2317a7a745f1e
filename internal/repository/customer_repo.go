package repository

import (
	"errors"

	"dairy-billing-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// First returns the earliest created customer, or nil when there are none
func (r *CustomerRepository) First() (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Order("created_at ASC").Order("id ASC").First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(c *models.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) Save(c *models.Customer) error {
	return r.db.Save(c).Error
}

func (r *CustomerRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
