package seed

import (
	"testing"
	"time"

	"dairy-billing-backend/internal/config"
	"dairy-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	require.NoError(t, Run(db, now))
	require.NoError(t, Run(db, now))

	var products, customers, bills int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.Bill{}).Count(&bills).Error)
	assert.EqualValues(t, 4, products)
	assert.EqualValues(t, 3, customers)
	assert.EqualValues(t, 2, bills)
}

func TestDemoBillsArePricedForTheirCustomer(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	require.NoError(t, Run(db, now))

	var wholesale, cafe models.Bill
	require.NoError(t, db.First(&wholesale, "id = ?", "bill-demo-1").Error)
	require.NoError(t, db.First(&cafe, "id = ?", "bill-demo-2").Error)

	assert.True(t, wholesale.Total.Equal(decimal.NewFromInt(855)), "total %s", wholesale.Total)
	assert.True(t, wholesale.Due().IsZero())
	assert.Equal(t, "Wholesale Buyer", wholesale.CustomerName())
	require.Len(t, wholesale.Lines(), 2)
	assert.True(t, wholesale.Lines()[0].Price.Equal(decimal.NewFromInt(48)))

	assert.True(t, cafe.Total.Equal(decimal.NewFromInt(700)), "total %s", cafe.Total)
	assert.True(t, cafe.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, cafe.Due().Equal(decimal.NewFromInt(200)))
	assert.True(t, cafe.Date.Before(wholesale.Date))
}

func TestProductsKeepCatalogOrder(t *testing.T) {
	base := time.Date(2026, 10, 13, 8, 0, 0, 0, time.UTC)
	products := Products(base)
	require.Len(t, products, 4)
	for i := 1; i < len(products); i++ {
		assert.True(t, products[i-1].CreatedAt.Before(products[i].CreatedAt))
	}
	assert.Equal(t, "milk-1", products[0].ID)
}
