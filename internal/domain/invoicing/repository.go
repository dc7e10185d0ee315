package invoicing

import (
	"github.com/invoicely/backend/internal/domain/shared"
)

// InvoiceRepository persists invoice aggregates. Save writes the invoice
// together with its full item set atomically and returns
// shared.ErrAlreadyExists when the invoice number is taken. Delete
// removes the invoice and its items.
type InvoiceRepository interface {
	shared.Repository[Invoice]
}

// TemplateRepository persists invoice template aggregates with the same
// whole-aggregate write semantics as InvoiceRepository.
type TemplateRepository interface {
	shared.Repository[InvoiceTemplate]
}
