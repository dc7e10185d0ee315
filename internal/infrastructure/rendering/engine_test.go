package rendering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicely/backend/internal/domain/invoicing"
)

func TestEngine_RenderInvoice(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	inv, err := invoicing.NewInvoice("INV-202601-0042", "Acme Corp", "2026-01-15", "2026-02-14", invoicing.StatusSent)
	require.NoError(t, err)
	require.NoError(t, inv.SetClient("Acme Corp", "billing@acme.test", "1 Main Street"))
	require.NoError(t, inv.ReplaceItems([]invoicing.LineInput{
		{Description: "Design work", Quantity: 10, Price: decimal.NewFromInt(120)},
		{Description: "Hosting", Quantity: 1, Price: decimal.RequireFromString("34.50")},
	}))
	require.NoError(t, inv.SetTax(decimal.NewFromInt(100)))
	inv.SetNotes("Payment due within 30 days.")

	html, err := engine.RenderInvoice(inv)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-202601-0042")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "billing@acme.test")
	assert.Contains(t, html, "Design work")
	assert.Contains(t, html, "$1,200.00")
	assert.Contains(t, html, "$1,234.50") // subtotal
	assert.Contains(t, html, "$1,334.50") // total with tax
	assert.Contains(t, html, "January 15, 2026")
	assert.Contains(t, html, "Payment due within 30 days.")
	assert.Contains(t, html, "status-sent")
	assert.Contains(t, html, "Sent")

	// Discount row is omitted when zero.
	assert.NotContains(t, html, "Discount")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"whole number", "1500", "$1,500.00"},
		{"cents", "1234.56", "$1,234.56"},
		{"million", "1234567.89", "$1,234,567.89"},
		{"small", "7.5", "$7.50"},
		{"zero", "0", "$0.00"},
		{"negative", "-38", "-$38.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.value)
			assert.Equal(t, tt.want, formatMoney(d))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 15, 2026", formatDate("2026-01-15"))
	assert.Equal(t, "December 1, 2026", formatDate("2026-12-01"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "not-a-date", formatDate("not-a-date"))
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Draft", statusText(invoicing.StatusDraft))
	assert.Equal(t, "Overdue", statusText(invoicing.StatusOverdue))
}
