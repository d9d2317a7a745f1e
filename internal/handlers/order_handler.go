package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *BillingHandler) GetOrder(c *gin.Context) {
	view, err := h.service.Order()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BillingHandler) SelectCustomer(c *gin.Context) {
	var payload struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.CustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	view, err := h.service.SelectCustomer(payload.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BillingHandler) SetQuantity(c *gin.Context) {
	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	view, err := h.service.SetQuantity(c.Param("productId"), *payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BillingHandler) AdjustQuantity(c *gin.Context) {
	var payload struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	view, err := h.service.AdjustQuantity(c.Param("productId"), payload.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GenerateBill issues a bill from the current order
func (h *BillingHandler) GenerateBill(c *gin.Context) {
	bill, err := h.service.GenerateBill()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "bill generated", "bill": billToDTO(bill)})
}

func (h *BillingHandler) NewOrder(c *gin.Context) {
	h.service.NewOrder()
	c.JSON(http.StatusOK, gin.H{"message": "new order started"})
}
