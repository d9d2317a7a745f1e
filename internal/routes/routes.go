package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "dairy-billing-backend/internal/handlers"
	"dairy-billing-backend/internal/repository"
	"dairy-billing-backend/internal/services/billing"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) *billing.Service {
	billingService := billing.NewService(
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewBillRepository(db),
		repository.NewPaymentAmendmentRepository(db),
	)

	h := handler.NewBillingHandler(billingService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.GET("/catalog", h.Catalog)

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.POST("/upload", h.UploadProducts)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	customers := api.Group("/customers")
	customers.GET("", h.ListCustomers)
	customers.POST("", h.CreateCustomer)
	customers.PUT("/:id", h.UpdateCustomer)
	customers.DELETE("/:id", h.DeleteCustomer)

	// New order screen
	order := api.Group("/order")
	order.GET("", h.GetOrder)
	order.PUT("/customer", h.SelectCustomer)
	order.PUT("/items/:productId", h.SetQuantity)
	order.POST("/items/:productId/adjust", h.AdjustQuantity)
	order.POST("/bill", h.GenerateBill)
	order.POST("/new", h.NewOrder)

	// Ledger: history and bill details
	bills := api.Group("/bills")
	{
		bills.GET("", h.ListBills)
		bills.GET("/active", h.ActiveBill)
		bills.GET("/:id", h.GetBill)
		bills.POST("/:id/view", h.ViewBill)
		bills.PUT("/:id/payment", h.AmendPayment)
		bills.GET("/:id/payments", h.ListPayments)
	}

	return billingService
}
