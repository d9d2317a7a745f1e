package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListBills returns the order history, most recent first
func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.service.Bills()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": billsToDTOs(bills)})
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	bill, err := h.service.FindBill(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, billToDTO(bill))
}

func (h *BillingHandler) ActiveBill(c *gin.Context) {
	bill, err := h.service.ActiveBill()
	if err != nil {
		respondError(c, err)
		return
	}
	if bill == nil {
		c.JSON(http.StatusOK, gin.H{"bill": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": billToDTO(bill)})
}

func (h *BillingHandler) ViewBill(c *gin.Context) {
	bill, err := h.service.ViewBill(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": billToDTO(bill)})
}

func (h *BillingHandler) AmendPayment(c *gin.Context) {
	var payload struct {
		PaidAmount *decimal.Decimal `json:"paid_amount"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.PaidAmount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	bill, changed, err := h.service.AmendPayment(c.Param("id"), *payload.PaidAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "payment updated"
	if !changed {
		message = "no changes"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "changed": changed, "bill": billToDTO(bill)})
}

func (h *BillingHandler) ListPayments(c *gin.Context) {
	payments, err := h.service.Payments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": payments})
}
