// Package seed loads the distributor's demo catalog and bill history.
package seed

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dairy-billing-backend/internal/models"
	"dairy-billing-backend/internal/repository"
	"dairy-billing-backend/internal/services/billing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Products is the demo catalog, created in this order from base.
func Products(base time.Time) []models.Product {
	rows := []struct {
		id, name, variant string
		price             int64
	}{
		{"milk-1", "Milk", "1L Pouch", 50},
		{"yogurt-1", "Yogurt", "500g Cup", 35},
		{"paneer-1", "Paneer", "200g Block", 80},
		{"ghee-1", "Ghee", "500ml Jar", 250},
	}
	out := make([]models.Product, 0, len(rows))
	for i, r := range rows {
		out = append(out, models.Product{
			ID:        r.id,
			Name:      r.name,
			Variant:   r.variant,
			Price:     decimal.NewFromInt(r.price),
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return out
}

func Customers(base time.Time) []models.Customer {
	return []models.Customer{
		{ID: "cust-1", Name: "Regular Customer", CreatedAt: base},
		{
			ID:   "cust-2",
			Name: "Wholesale Buyer",
			PriceOverrides: datatypes.NewJSONType(models.PriceOverrides{
				"milk-1":   decimal.NewFromInt(48),
				"paneer-1": decimal.NewFromInt(75),
			}),
			CreatedAt: base.Add(time.Millisecond),
		},
		{ID: "cust-3", Name: "Cafe Corner", CreatedAt: base.Add(2 * time.Millisecond)},
	}
}

type demoBill struct {
	id         string
	customerID string
	quantities billing.Quantities
	age        time.Duration
	paid       decimal.Decimal
}

// demoBills are appended oldest first, so the newest heads the ledger.
var demoBills = []demoBill{
	{"bill-demo-2", "cust-3", billing.Quantities{"yogurt-1": 20}, 48 * time.Hour, decimal.NewFromInt(500)},
	{"bill-demo-1", "cust-2", billing.Quantities{"milk-1": 10, "paneer-1": 5}, 24 * time.Hour, decimal.NewFromInt(855)},
}

// Run inserts the demo catalog and history. Rows are keyed by fixed ids, so a
// second run inserts nothing.
func Run(db *gorm.DB, now time.Time) error {
	products := repository.NewProductRepository(db)
	customers := repository.NewCustomerRepository(db)
	bills := repository.NewBillRepository(db)

	base := now.Add(-72 * time.Hour)
	catalog := Products(base)
	for i := range catalog {
		if err := createMissing(db, &catalog[i], catalog[i].ID); err != nil {
			return fmt.Errorf("seed product %s: %w", catalog[i].ID, err)
		}
	}
	people := Customers(base)
	for i := range people {
		if err := createMissing(db, &people[i], people[i].ID); err != nil {
			return fmt.Errorf("seed customer %s: %w", people[i].ID, err)
		}
	}

	for _, d := range demoBills {
		if _, err := bills.GetByID(d.id); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		customer, err := customers.GetByID(d.customerID)
		if err != nil {
			return fmt.Errorf("seed bill %s: %w", d.id, err)
		}
		list, err := products.List()
		if err != nil {
			return err
		}
		order, err := billing.BuildOrder(list, customer, d.quantities)
		if err != nil {
			return err
		}
		bill, err := billing.CreateBill(customer, order.Items, order.Subtotal, now.Add(-d.age))
		if err != nil {
			return fmt.Errorf("seed bill %s: %w", d.id, err)
		}
		bill.ID = d.id
		bill.PaidAmount = d.paid
		if err := bills.Append(bill); err != nil {
			return fmt.Errorf("seed bill %s: %w", d.id, err)
		}
	}
	log.Println("Demo catalog ready: products", len(catalog), "customers", len(people), "bills", len(demoBills))
	return nil
}

func createMissing(db *gorm.DB, row any, id string) error {
	var count int64
	if err := db.Model(row).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(row).Error
}
