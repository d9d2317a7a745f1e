package handler

import (
	"encoding/csv"
	"io"
	"log"
	"net/http"
	"strings"

	"dairy-billing-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *BillingHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products})
}

func (h *BillingHandler) CreateProduct(c *gin.Context) {
	var payload billing.ProductInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	product, err := h.service.CreateProduct(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *BillingHandler) UpdateProduct(c *gin.Context) {
	var payload billing.ProductInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	product, err := h.service.UpdateProduct(c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *BillingHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteProduct(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// UploadProducts imports a name,variant,price CSV. The first row is a header;
// rows that do not make a valid product are skipped.
func (h *BillingHandler) UploadProducts(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	log.Println("Received product file:", header.Filename, "size:", header.Size)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot_read_csv_header"})
		return
	}

	inserted, skipped, rowNum := 0, 0, 1
	for {
		record, err := reader.Read()
		rowNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping row %d: %v", rowNum, err)
			skipped++
			continue
		}
		if len(record) < 3 {
			log.Printf("Skipping row %d: insufficient columns", rowNum)
			skipped++
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			log.Printf("Skipping row %d: invalid price=%s", rowNum, record[2])
			skipped++
			continue
		}
		input := billing.ProductInput{
			Name:    strings.TrimSpace(record[0]),
			Variant: strings.TrimSpace(record[1]),
			Price:   price,
		}
		if _, err := h.service.CreateProduct(input); err != nil {
			log.Printf("Skipping row %d: %v", rowNum, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Println("Total products imported:", inserted)
	c.JSON(http.StatusOK, gin.H{
		"file":          header.Filename,
		"productsAdded": inserted,
		"rowsSkipped":   skipped,
	})
}

func (h *BillingHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": customers})
}

func (h *BillingHandler) CreateCustomer(c *gin.Context) {
	var payload billing.CustomerInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	customer, err := h.service.CreateCustomer(payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *BillingHandler) UpdateCustomer(c *gin.Context) {
	var payload billing.CustomerInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	customer, err := h.service.UpdateCustomer(c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *BillingHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteCustomer(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *BillingHandler) Catalog(c *gin.Context) {
	catalog, err := h.service.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}
