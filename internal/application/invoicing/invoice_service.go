package invoicing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
)

// maxNumberAttempts bounds how often a colliding invoice number is
// regenerated before the conflict is surfaced to the caller
const maxNumberAttempts = 5

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo  invoicing.InvoiceRepository
	templateRepo invoicing.TemplateRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo invoicing.InvoiceRepository, templateRepo invoicing.TemplateRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		templateRepo: templateRepo,
	}
}

// Create creates a new invoice. When a template is referenced and the
// request omits items, the template's items and defaults fill the gaps;
// explicit request fields always win. The generated invoice number is
// regenerated on uniqueness conflicts, a bounded number of times.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	lines := toDomainLines(req.Items)
	dueDate := req.DueDate
	notes := req.Notes
	tax := decimal.Zero
	if req.Tax != nil {
		tax = *req.Tax
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}

	var tpl *invoicing.InvoiceTemplate
	if req.TemplateID != nil {
		var err error
		tpl, err = s.templateRepo.FindByID(ctx, *req.TemplateID)
		if err != nil {
			return nil, err
		}

		if len(lines) == 0 {
			lines = tpl.Lines()
		}
		if req.Tax == nil {
			tax = tpl.DefaultTax
		}
		if req.Discount == nil {
			discount = tpl.DefaultDiscount
		}
		if notes == "" {
			notes = tpl.DefaultNotes
		}
		if dueDate == "" {
			dueDate, err = tpl.DueDateFrom(req.InvoiceDate)
			if err != nil {
				return nil, err
			}
		}
	}

	inv, err := invoicing.NewInvoice(invoicing.GenerateInvoiceNumber(), req.ClientName, req.InvoiceDate, dueDate, invoicing.InvoiceStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if err := inv.SetClient(req.ClientName, req.ClientEmail, req.ClientAddress); err != nil {
		return nil, err
	}
	inv.SetNotes(notes)
	if err := inv.SetTax(tax); err != nil {
		return nil, err
	}
	if err := inv.SetDiscount(discount); err != nil {
		return nil, err
	}
	if err := inv.ReplaceItems(lines); err != nil {
		return nil, err
	}
	if tpl != nil {
		id := tpl.ID
		inv.SetTemplateID(&id)
	}

	if err := s.saveWithNumberRetry(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// saveWithNumberRetry persists the invoice, drawing a fresh invoice
// number whenever the current one is already taken
func (s *InvoiceService) saveWithNumberRetry(ctx context.Context, inv *invoicing.Invoice) error {
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err = s.invoiceRepo.Save(ctx, inv)
		if !isAlreadyExists(err) {
			return err
		}
		if serr := inv.SetInvoiceNumber(invoicing.GenerateInvoiceNumber()); serr != nil {
			return serr
		}
	}
	return err
}

func isAlreadyExists(err error) bool {
	var derr *shared.DomainError
	return errors.As(err, &derr) && derr.Code == "ALREADY_EXISTS"
}

// GetByID retrieves an invoice aggregate by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves all invoices ordered by creation time, optionally
// filtered by status
func (s *InvoiceService) List(ctx context.Context, status string) ([]InvoiceResponse, error) {
	filter := shared.DefaultFilter()
	if status != "" {
		if !invoicing.InvoiceStatus(status).IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid invoice status filter")
		}
		filter.Filters["status"] = status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, nil
}

// Update applies a partial update to an invoice. A non-nil item set
// replaces all existing items; tax or discount changes recompute the
// totals from the items already stored.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil || req.ClientEmail != nil || req.ClientAddress != nil {
		name := inv.ClientName
		if req.ClientName != nil {
			name = *req.ClientName
		}
		email := inv.ClientEmail
		if req.ClientEmail != nil {
			email = *req.ClientEmail
		}
		address := inv.ClientAddress
		if req.ClientAddress != nil {
			address = *req.ClientAddress
		}
		if err := inv.SetClient(name, email, address); err != nil {
			return nil, err
		}
	}

	if req.InvoiceDate != nil || req.DueDate != nil {
		invoiceDate := inv.InvoiceDate
		if req.InvoiceDate != nil {
			invoiceDate = *req.InvoiceDate
		}
		dueDate := inv.DueDate
		if req.DueDate != nil {
			dueDate = *req.DueDate
		}
		if err := inv.SetDates(invoiceDate, dueDate); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := inv.SetStatus(invoicing.InvoiceStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		inv.SetNotes(*req.Notes)
	}
	if req.Tax != nil {
		if err := inv.SetTax(*req.Tax); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := inv.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		if err := inv.ReplaceItems(toDomainLines(req.Items)); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete removes an invoice together with its items
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
