package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dairy-billing-backend/internal/config"
	"dairy-billing-backend/internal/seed"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type billBody struct {
	ID       string `json:"id"`
	Customer struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"customer"`
	Items []struct {
		ProductID string          `json:"product_id"`
		Quantity  int             `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
	} `json:"items"`
	Total      decimal.Decimal `json:"total"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Due        decimal.Decimal `json:"due"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, seed.Run(db, time.Now()))

	r := gin.New()
	RegisterRoutes(r, db)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestOrderToBillFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPut, "/api/order/customer", gin.H{"customer_id": "cust-2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodPut, "/api/order/items/milk-1", gin.H{"quantity": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, "/api/order/items/paneer-1/adjust", gin.H{"delta": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view struct {
		CustomerID string          `json:"customer_id"`
		Subtotal   decimal.Decimal `json:"subtotal"`
	}
	decode(t, w, &view)
	assert.Equal(t, "cust-2", view.CustomerID)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(855)), "subtotal %s", view.Subtotal)

	w = do(t, r, http.MethodPost, "/api/order/bill", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Bill billBody `json:"bill"`
	}
	decode(t, w, &created)
	assert.True(t, created.Bill.Total.Equal(decimal.NewFromInt(855)))
	assert.True(t, created.Bill.Due.IsZero())
	assert.Equal(t, "Wholesale Buyer", created.Bill.Customer.Name)
	require.Len(t, created.Bill.Items, 2)
	assert.Equal(t, "milk-1", created.Bill.Items[0].ProductID)

	w = do(t, r, http.MethodPut, "/api/bills/"+created.Bill.ID+"/payment", gin.H{"paid_amount": 500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var amended struct {
		Changed bool     `json:"changed"`
		Bill    billBody `json:"bill"`
	}
	decode(t, w, &amended)
	assert.True(t, amended.Changed)
	assert.True(t, amended.Bill.Due.Equal(decimal.NewFromInt(355)), "due %s", amended.Bill.Due)

	w = do(t, r, http.MethodGet, "/api/bills/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active struct {
		Bill *billBody `json:"bill"`
	}
	decode(t, w, &active)
	require.NotNil(t, active.Bill)
	assert.True(t, active.Bill.PaidAmount.Equal(decimal.NewFromInt(500)))

	w = do(t, r, http.MethodGet, "/api/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Items []billBody `json:"items"`
	}
	decode(t, w, &history)
	require.Len(t, history.Items, 3)
	assert.Equal(t, created.Bill.ID, history.Items[0].ID)

	w = do(t, r, http.MethodGet, "/api/bills/"+created.Bill.ID+"/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, w, &payments)
	assert.Len(t, payments.Items, 1)

	w = do(t, r, http.MethodPost, "/api/order/new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/bills/active", nil)
	decode(t, w, &active)
	assert.Nil(t, active.Bill)
}

func TestErrorResponses(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/order/bill", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "empty_order")

	w = do(t, r, http.MethodGet, "/api/bills/bill-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, "/api/bills/bill-demo-1/payment", gin.H{"paid_amount": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_amount")

	w = do(t, r, http.MethodPut, "/api/bills/bill-demo-1/payment", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/bills/bill-demo-1/payment", gin.H{"paid_amount": 855})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no changes")

	w = do(t, r, http.MethodPost, "/api/products", gin.H{"name": "", "variant": "", "price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")

	w = do(t, r, http.MethodPut, "/api/order/items/prod-missing", gin.H{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOversizedMoneyIsRejected(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/products", json.RawMessage(`{"name":"Butter","variant":"100g","price":1e400}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "out_of_range")

	w = do(t, r, http.MethodPut, "/api/bills/bill-demo-1/payment", json.RawMessage(`{"paid_amount":1e400}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_amount")

	// the store keeps serving after the rejections
	w = do(t, r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Items, 4)

	w = do(t, r, http.MethodGet, "/api/bills/bill-demo-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bill billBody
	decode(t, w, &bill)
	assert.True(t, bill.PaidAmount.Equal(decimal.NewFromInt(855)))
}

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/products", gin.H{"name": "Butter", "variant": "100g", "price": 55})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product struct {
		ID    string          `json:"id"`
		Price decimal.Decimal `json:"price"`
	}
	decode(t, w, &product)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(55)))

	w = do(t, r, http.MethodDelete, "/api/products/"+product.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog struct {
		Products  []json.RawMessage `json:"products"`
		Customers []json.RawMessage `json:"customers"`
	}
	decode(t, w, &catalog)
	assert.Len(t, catalog.Products, 4)
	assert.Len(t, catalog.Customers, 3)
}

func TestUploadProducts(t *testing.T) {
	r := setupRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,variant,price\nButter,100g,55\nCurd,1kg,not-a-price\nCheese,,120\nLassi,200ml,25.50\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		ProductsAdded int `json:"productsAdded"`
		RowsSkipped   int `json:"rowsSkipped"`
	}
	decode(t, w, &result)
	assert.Equal(t, 2, result.ProductsAdded)
	assert.Equal(t, 2, result.RowsSkipped)

	w = do(t, r, http.MethodGet, "/api/products", nil)
	var list struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Items, 6)
}
