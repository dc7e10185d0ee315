package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type validatedRequest struct {
	ClientName string `json:"clientName" binding:"required,min=1,max=200"`
	Email      string `json:"clientEmail" binding:"required,email"`
	Date       string `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("accepts a valid body", func(t *testing.T) {
		w := send(`{"clientName":"Acme","clientEmail":"a@b.test","invoiceDate":"2026-01-15"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reports missing fields using JSON tag names", func(t *testing.T) {
		w := send(`{"clientEmail":"a@b.test","invoiceDate":"2026-01-15"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), "clientName: This field is required")
	})

	t.Run("reports invalid email", func(t *testing.T) {
		w := send(`{"clientName":"Acme","clientEmail":"nope","invoiceDate":"2026-01-15"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "clientEmail: Invalid email format")
	})

	t.Run("reports invalid date format", func(t *testing.T) {
		w := send(`{"clientName":"Acme","clientEmail":"a@b.test","invoiceDate":"15/01/2026"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invoiceDate: Must be a valid date in YYYY-MM-DD format")
	})

	t.Run("collapses multiple failures into one message", func(t *testing.T) {
		w := send(`{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "; ")
	})

	t.Run("handles malformed JSON", func(t *testing.T) {
		w := send(`{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})
}

type pricedItem struct {
	Price decimal.Decimal `json:"price" binding:"gte=0"`
}

type pricedRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
	Items  []pricedItem    `json:"items" binding:"omitempty,dive"`
}

func TestSetupValidator_DecimalComparisons(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req pricedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("accepts non-negative amounts without panicking", func(t *testing.T) {
		var w *httptest.ResponseRecorder
		assert.NotPanics(t, func() {
			w = send(`{"amount":"120.50","items":[{"price":"34.50"},{"price":"0"}]}`)
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		w := send(`{"amount":"-1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "amount: Must be greater than or equal to 0")
	})

	t.Run("rejects a negative nested price", func(t *testing.T) {
		w := send(`{"amount":"10","items":[{"price":"-5"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Must be greater than or equal to 0")
	})
}
