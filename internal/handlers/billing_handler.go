package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"dairy-billing-backend/internal/models"
	"dairy-billing-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BillingHandler struct {
	service *billing.Service
}

func NewBillingHandler(s *billing.Service) *BillingHandler {
	return &BillingHandler{service: s}
}

// BillDTO is a bill as the bill details and history screens read it.
type BillDTO struct {
	ID         string                  `json:"id"`
	Customer   models.CustomerSnapshot `json:"customer"`
	Items      []models.OrderItem      `json:"items"`
	Total      decimal.Decimal         `json:"total"`
	PaidAmount decimal.Decimal         `json:"paid_amount"`
	Due        decimal.Decimal         `json:"due"`
	Date       time.Time               `json:"date"`
}

func billToDTO(b *models.Bill) BillDTO {
	return BillDTO{
		ID:         b.ID,
		Customer:   b.Customer.Data(),
		Items:      b.Lines(),
		Total:      b.Total,
		PaidAmount: b.PaidAmount,
		Due:        b.Due(),
		Date:       b.Date,
	}
}

func billsToDTOs(bills []models.Bill) []BillDTO {
	out := make([]BillDTO, 0, len(bills))
	for i := range bills {
		out = append(out, billToDTO(&bills[i]))
	}
	return out
}

// respondError maps service errors onto status codes and error codes.
func respondError(c *gin.Context, err error) {
	var verr *billing.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "details": verr.Violations})
	case errors.Is(err, billing.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_amount", "details": err.Error()})
	case errors.Is(err, billing.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "details": err.Error()})
	case errors.Is(err, billing.ErrMissingCustomer):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "missing_customer", "details": "add items and select a customer"})
	case errors.Is(err, billing.ErrEmptyOrder):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "empty_order", "details": "add items and select a customer"})
	case errors.Is(err, billing.ErrEmptyCatalog):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "empty_catalog", "details": "add at least one product before creating an order"})
	default:
		log.Println("ERROR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
