package invoicing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTemplate(t *testing.T) *InvoiceTemplate {
	tpl, err := NewInvoiceTemplate("Monthly Retainer", "Recurring monthly billing")
	require.NoError(t, err)
	require.NoError(t, tpl.ReplaceItems([]LineInput{
		{Description: "Retainer fee", Quantity: 1, Price: decimal.NewFromInt(1500)},
	}))
	return tpl
}

func TestNewInvoiceTemplate(t *testing.T) {
	t.Run("creates template with defaults", func(t *testing.T) {
		tpl, err := NewInvoiceTemplate("Monthly Retainer", "")
		require.NoError(t, err)

		assert.Equal(t, "Monthly Retainer", tpl.Name)
		assert.Equal(t, DefaultDueDays, tpl.DefaultDueDays)
		assert.True(t, tpl.DefaultTax.IsZero())
		assert.True(t, tpl.DefaultDiscount.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewInvoiceTemplate("", "")
		assert.Error(t, err)
	})
}

func TestInvoiceTemplate_ReplaceItems(t *testing.T) {
	t.Run("replaces the full item set", func(t *testing.T) {
		tpl := createTestTemplate(t)

		err := tpl.ReplaceItems([]LineInput{
			{Description: "Support hours", Quantity: 10, Price: decimal.NewFromInt(80)},
			{Description: "Licence", Quantity: 1, Price: decimal.NewFromInt(200)},
		})
		require.NoError(t, err)

		assert.Len(t, tpl.Items, 2)
		assert.Equal(t, tpl.ID, tpl.Items[0].TemplateID)
	})

	t.Run("rejects empty item set", func(t *testing.T) {
		tpl := createTestTemplate(t)
		assert.Error(t, tpl.ReplaceItems(nil))
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		tpl := createTestTemplate(t)
		assert.Error(t, tpl.ReplaceItems([]LineInput{{Description: "", Quantity: 1, Price: decimal.NewFromInt(1)}}))
		assert.Error(t, tpl.ReplaceItems([]LineInput{{Description: "Fee", Quantity: 0, Price: decimal.NewFromInt(1)}}))
	})
}

func TestInvoiceTemplate_Defaults(t *testing.T) {
	t.Run("updates default tax, discount and notes", func(t *testing.T) {
		tpl := createTestTemplate(t)
		require.NoError(t, tpl.SetDefaults(decimal.NewFromInt(10), decimal.NewFromInt(5), "Net 30"))

		assert.True(t, tpl.DefaultTax.Equal(decimal.NewFromInt(10)))
		assert.True(t, tpl.DefaultDiscount.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "Net 30", tpl.DefaultNotes)
	})

	t.Run("rejects negative defaults", func(t *testing.T) {
		tpl := createTestTemplate(t)
		assert.Error(t, tpl.SetDefaults(decimal.NewFromInt(-1), decimal.Zero, ""))
		assert.Error(t, tpl.SetDefaults(decimal.Zero, decimal.NewFromInt(-1), ""))
	})

	t.Run("rejects negative due days", func(t *testing.T) {
		tpl := createTestTemplate(t)
		assert.Error(t, tpl.SetDefaultDueDays(-1))
		require.NoError(t, tpl.SetDefaultDueDays(14))
		assert.Equal(t, 14, tpl.DefaultDueDays)
	})

	t.Run("accepts zero due days for due-on-receipt terms", func(t *testing.T) {
		tpl := createTestTemplate(t)
		require.NoError(t, tpl.SetDefaultDueDays(0))
		assert.Equal(t, 0, tpl.DefaultDueDays)
	})
}

func TestInvoiceTemplate_DueDateFrom(t *testing.T) {
	tpl := createTestTemplate(t)
	require.NoError(t, tpl.SetDefaultDueDays(30))

	t.Run("adds the payment term to the invoice date", func(t *testing.T) {
		due, err := tpl.DueDateFrom("2026-01-10")
		require.NoError(t, err)
		assert.Equal(t, "2026-02-09", due)
	})

	t.Run("crosses month and year boundaries", func(t *testing.T) {
		due, err := tpl.DueDateFrom("2026-12-15")
		require.NoError(t, err)
		assert.Equal(t, "2027-01-14", due)
	})

	t.Run("rejects malformed invoice dates", func(t *testing.T) {
		_, err := tpl.DueDateFrom("next tuesday")
		assert.Error(t, err)
	})

	t.Run("zero due days falls on the invoice date", func(t *testing.T) {
		onReceipt := createTestTemplate(t)
		require.NoError(t, onReceipt.SetDefaultDueDays(0))

		due, err := onReceipt.DueDateFrom("2026-01-10")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-10", due)
	})
}

func TestInvoiceTemplate_Lines(t *testing.T) {
	tpl := createTestTemplate(t)
	require.NoError(t, tpl.ReplaceItems([]LineInput{
		{Description: "Support hours", Quantity: 10, Price: decimal.NewFromInt(80)},
	}))

	lines := tpl.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Support hours", lines[0].Description)
	assert.Equal(t, int64(10), lines[0].Quantity)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(80)))
}
