package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicely/backend/internal/domain/shared"
)

// DefaultDueDays is the fallback payment term for templates
const DefaultDueDays = 30

// TemplateItem is a reusable line carried by an invoice template
type TemplateItem struct {
	ID          uuid.UUID
	TemplateID  uuid.UUID
	Description string
	Quantity    int64
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// NewTemplateItem creates a template line item
func NewTemplateItem(templateID uuid.UUID, description string, quantity int64, price decimal.Decimal) (*TemplateItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item price cannot be negative")
	}

	return &TemplateItem{
		ID:          uuid.New(),
		TemplateID:  templateID,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now(),
	}, nil
}

// InvoiceTemplate is a named set of invoice defaults: line items, tax,
// discount, notes and a payment term in days
type InvoiceTemplate struct {
	shared.BaseEntity
	Name            string
	Description     string
	DefaultTax      decimal.Decimal
	DefaultDiscount decimal.Decimal
	DefaultNotes    string
	DefaultDueDays  int
	Items           []TemplateItem
}

// NewInvoiceTemplate creates a template with no items yet
func NewInvoiceTemplate(name, description string) (*InvoiceTemplate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Template name cannot be empty")
	}

	return &InvoiceTemplate{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Description:     description,
		DefaultTax:      decimal.Zero,
		DefaultDiscount: decimal.Zero,
		DefaultDueDays:  DefaultDueDays,
		Items:           []TemplateItem{},
	}, nil
}

// SetName renames the template
func (t *InvoiceTemplate) SetName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Template name cannot be empty")
	}
	t.Name = name
	t.Touch()
	return nil
}

// SetDescription updates the description
func (t *InvoiceTemplate) SetDescription(description string) {
	t.Description = description
	t.Touch()
}

// SetDefaults updates the default tax, discount and notes
func (t *InvoiceTemplate) SetDefaults(tax, discount decimal.Decimal, notes string) error {
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Tax cannot be negative")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	t.DefaultTax = tax
	t.DefaultDiscount = discount
	t.DefaultNotes = notes
	t.Touch()
	return nil
}

// SetDefaultDueDays updates the payment term used to derive due dates.
// Zero is a valid term and means the invoice is due on receipt.
func (t *InvoiceTemplate) SetDefaultDueDays(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Due days cannot be negative")
	}
	t.DefaultDueDays = days
	t.Touch()
	return nil
}

// ReplaceItems swaps the full template item set for a new one
func (t *InvoiceTemplate) ReplaceItems(lines []LineInput) error {
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Template must have at least one item")
	}

	items := make([]TemplateItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewTemplateItem(t.ID, line.Description, line.Quantity, line.Price)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	t.Items = items
	t.Touch()
	return nil
}

// Lines converts the template items into invoice line inputs
func (t *InvoiceTemplate) Lines() []LineInput {
	lines := make([]LineInput, len(t.Items))
	for i, item := range t.Items {
		lines[i] = LineInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return lines
}

// DueDateFrom derives a due date from the given invoice date using the
// template's payment term
func (t *InvoiceTemplate) DueDateFrom(invoiceDate string) (string, error) {
	start, err := time.Parse(DateLayout, invoiceDate)
	if err != nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid invoice date, expected YYYY-MM-DD")
	}
	days := t.DefaultDueDays
	if days < 0 {
		days = DefaultDueDays
	}
	return start.AddDate(0, 0, days).Format(DateLayout), nil
}
