package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
	"github.com/invoicely/backend/internal/infrastructure/persistence/models"
)

func setupInvoicingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.InvoiceModel{},
		&models.InvoiceItemModel{},
		&models.InvoiceTemplateModel{},
		&models.TemplateItemModel{},
	)
	require.NoError(t, err)

	return db
}

func newStoredInvoice(t *testing.T, number string) *invoicing.Invoice {
	t.Helper()
	inv, err := invoicing.NewInvoice(number, "Acme Corp", "2026-01-10", "2026-02-09", invoicing.StatusDraft)
	require.NoError(t, err)
	require.NoError(t, inv.SetClient("Acme Corp", "billing@acme.test", "1 Main St"))
	require.NoError(t, inv.ReplaceItems([]invoicing.LineInput{
		{Description: "Design work", Quantity: 2, Price: decimal.NewFromInt(100)},
		{Description: "Hosting", Quantity: 1, Price: decimal.NewFromInt(50)},
	}))
	return inv
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := setupInvoicingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	t.Run("round-trips the aggregate", func(t *testing.T) {
		inv := newStoredInvoice(t, "INV-202601-0001")
		require.NoError(t, inv.SetTax(decimal.NewFromInt(25)))

		require.NoError(t, repo.Save(ctx, inv))

		found, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)

		assert.Equal(t, inv.InvoiceNumber, found.InvoiceNumber)
		assert.Equal(t, inv.ClientEmail, found.ClientEmail)
		assert.Equal(t, invoicing.StatusDraft, found.Status)
		require.Len(t, found.Items, 2)
		assert.Equal(t, "Design work", found.Items[0].Description)
		assert.True(t, found.Items[0].Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(250)))
		assert.True(t, found.Total.Equal(decimal.NewFromInt(275)))
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects a duplicate invoice number", func(t *testing.T) {
		first := newStoredInvoice(t, "INV-202601-0002")
		require.NoError(t, repo.Save(ctx, first))

		second := newStoredInvoice(t, "INV-202601-0002")
		err := repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		// The failed save must not leave orphan items behind
		var itemCount int64
		require.NoError(t, db.Model(&models.InvoiceItemModel{}).
			Where("invoice_id = ?", second.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("update replaces items wholesale", func(t *testing.T) {
		inv := newStoredInvoice(t, "INV-202601-0003")
		require.NoError(t, repo.Save(ctx, inv))
		oldItemID := inv.Items[0].ID

		require.NoError(t, inv.ReplaceItems([]invoicing.LineInput{
			{Description: "Consulting", Quantity: 3, Price: decimal.NewFromInt(10)},
		}))
		require.NoError(t, repo.Save(ctx, inv))

		found, err := repo.FindByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Consulting", found.Items[0].Description)
		assert.NotEqual(t, oldItemID, found.Items[0].ID)

		var itemCount int64
		require.NoError(t, db.Model(&models.InvoiceItemModel{}).
			Where("invoice_id = ?", inv.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(1), itemCount)
	})
}

func TestGormInvoiceRepository_FindAll(t *testing.T) {
	db := setupInvoicingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	first := newStoredInvoice(t, "INV-202601-0010")
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, first))

	second := newStoredInvoice(t, "INV-202601-0011")
	second.CreatedAt = time.Now().Add(-1 * time.Hour)
	require.NoError(t, second.SetStatus(invoicing.StatusPaid))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("orders by creation time ascending", func(t *testing.T) {
		invoices, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)

		require.Len(t, invoices, 2)
		assert.Equal(t, "INV-202601-0010", invoices[0].InvoiceNumber)
		assert.Equal(t, "INV-202601-0011", invoices[1].InvoiceNumber)
		assert.Len(t, invoices[0].Items, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "paid"

		invoices, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)

		require.Len(t, invoices, 1)
		assert.Equal(t, "INV-202601-0011", invoices[0].InvoiceNumber)
	})

	t.Run("counts by filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		filter.Filters["status"] = "paid"
		count, err = repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormInvoiceRepository_Delete(t *testing.T) {
	db := setupInvoicingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	t.Run("deletes the invoice and its items", func(t *testing.T) {
		inv := newStoredInvoice(t, "INV-202601-0020")
		require.NoError(t, repo.Save(ctx, inv))

		require.NoError(t, repo.Delete(ctx, inv.ID))

		_, err := repo.FindByID(ctx, inv.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Model(&models.InvoiceItemModel{}).
			Where("invoice_id = ?", inv.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
