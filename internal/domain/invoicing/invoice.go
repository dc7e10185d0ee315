package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicely/backend/internal/domain/shared"
)

// DateLayout is the calendar date format used for invoice and due dates
const DateLayout = "2006-01-02"

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// IsValid checks whether the status is one of the known states
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// InvoiceItem is a billable line on an invoice
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	Price       decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// NewInvoiceItem creates a line item with a computed amount
func NewInvoiceItem(invoiceID uuid.UUID, description string, quantity int64, price decimal.Decimal) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item price cannot be negative")
	}

	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		Amount:      price.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// LineInput carries the caller-supplied fields of a line item
type LineInput struct {
	Description string
	Quantity    int64
	Price       decimal.Decimal
}

// Invoice is the billing aggregate root. Subtotal and Total are always
// derived from the current items, tax and discount; callers never set
// them directly.
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	InvoiceDate   string
	DueDate       string
	Status        InvoiceStatus
	Notes         string
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	TemplateID    *uuid.UUID
	Items         []InvoiceItem
}

// NewInvoice creates an invoice in the given status with no items yet
func NewInvoice(invoiceNumber, clientName, invoiceDate, dueDate string, status InvoiceStatus) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	if err := validateDate(invoiceDate, "invoice date"); err != nil {
		return nil, err
	}
	if err := validateDate(dueDate, "due date"); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusDraft
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid invoice status")
	}

	return &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceNumber: invoiceNumber,
		ClientName:    clientName,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Status:        status,
		Tax:           decimal.Zero,
		Discount:      decimal.Zero,
		Subtotal:      decimal.Zero,
		Total:         decimal.Zero,
		Items:         []InvoiceItem{},
	}, nil
}

func validateDate(value, field string) error {
	if value == "" {
		return shared.NewDomainError("INVALID_INPUT", "Missing "+field)
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Invalid "+field+", expected YYYY-MM-DD")
	}
	return nil
}

// SetInvoiceNumber replaces the invoice number, used when a generated
// number collides and a fresh one is drawn
func (inv *Invoice) SetInvoiceNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_INPUT", "Invoice number cannot be empty")
	}
	inv.InvoiceNumber = number
	inv.Touch()
	return nil
}

// SetClient updates the client contact fields
func (inv *Invoice) SetClient(name, email, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	inv.ClientName = name
	inv.ClientEmail = email
	inv.ClientAddress = address
	inv.Touch()
	return nil
}

// SetDates updates the invoice and due dates
func (inv *Invoice) SetDates(invoiceDate, dueDate string) error {
	if err := validateDate(invoiceDate, "invoice date"); err != nil {
		return err
	}
	if err := validateDate(dueDate, "due date"); err != nil {
		return err
	}
	inv.InvoiceDate = invoiceDate
	inv.DueDate = dueDate
	inv.Touch()
	return nil
}

// SetStatus transitions the invoice to the given status
func (inv *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid invoice status")
	}
	inv.Status = status
	inv.Touch()
	return nil
}

// SetNotes updates the free-form notes
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.Touch()
}

// SetTemplateID records which template the invoice was created from
func (inv *Invoice) SetTemplateID(id *uuid.UUID) {
	inv.TemplateID = id
	inv.Touch()
}

// SetTax replaces the tax amount and recomputes the totals
func (inv *Invoice) SetTax(tax decimal.Decimal) error {
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Tax cannot be negative")
	}
	inv.Tax = tax
	inv.recalculateTotals()
	inv.Touch()
	return nil
}

// SetDiscount replaces the discount amount and recomputes the totals
func (inv *Invoice) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	inv.Discount = discount
	inv.recalculateTotals()
	inv.Touch()
	return nil
}

// ReplaceItems swaps the full line item set for a new one. Partial item
// edits are not supported; every write carries the complete set.
func (inv *Invoice) ReplaceItems(lines []LineInput) error {
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Invoice must have at least one item")
	}

	items := make([]InvoiceItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewInvoiceItem(inv.ID, line.Description, line.Quantity, line.Price)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	inv.Items = items
	inv.recalculateTotals()
	inv.Touch()
	return nil
}

func (inv *Invoice) recalculateTotals() {
	lines := make([]Line, len(inv.Items))
	for i, item := range inv.Items {
		lines[i] = Line{Quantity: item.Quantity, Price: item.Price}
	}
	inv.Subtotal, inv.Total = ComputeTotals(lines, inv.Tax, inv.Discount)
}
