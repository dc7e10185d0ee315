package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicely/backend/internal/domain/invoicing"
)

// ==================== Invoice DTOs ====================

// LineItemInput represents a line item in create/update requests
type LineItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ClientName    string           `json:"clientName" binding:"required,min=1,max=200"`
	ClientEmail   string           `json:"clientEmail" binding:"required,email,max=200"`
	ClientAddress string           `json:"clientAddress" binding:"required,min=1,max=500"`
	InvoiceDate   string           `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	DueDate       string           `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Status        string           `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	Notes         string           `json:"notes" binding:"max=2000"`
	Items         []LineItemInput  `json:"items" binding:"omitempty,dive"`
	Tax           *decimal.Decimal `json:"tax" binding:"omitempty"`
	Discount      *decimal.Decimal `json:"discount" binding:"omitempty"`
	TemplateID    *uuid.UUID       `json:"templateId"`
}

// UpdateInvoiceRequest represents a partial invoice update. Nil fields
// are left untouched; a non-nil Items slice replaces the full item set.
type UpdateInvoiceRequest struct {
	ClientName    *string          `json:"clientName" binding:"omitempty,min=1,max=200"`
	ClientEmail   *string          `json:"clientEmail" binding:"omitempty,email,max=200"`
	ClientAddress *string          `json:"clientAddress" binding:"omitempty,min=1,max=500"`
	InvoiceDate   *string          `json:"invoiceDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate       *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Status        *string          `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	Notes         *string          `json:"notes" binding:"omitempty,max=2000"`
	Items         []LineItemInput  `json:"items" binding:"omitempty,dive"`
	Tax           *decimal.Decimal `json:"tax" binding:"omitempty"`
	Discount      *decimal.Decimal `json:"discount" binding:"omitempty"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse represents an invoice aggregate in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	ClientName    string                `json:"clientName"`
	ClientEmail   string                `json:"clientEmail"`
	ClientAddress string                `json:"clientAddress"`
	InvoiceDate   string                `json:"invoiceDate"`
	DueDate       string                `json:"dueDate"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes,omitempty"`
	Tax           decimal.Decimal       `json:"tax"`
	Discount      decimal.Decimal       `json:"discount"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Total         decimal.Decimal       `json:"total"`
	TemplateID    *uuid.UUID            `json:"templateId,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Amount,
		}
	}

	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientAddress: inv.ClientAddress,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Subtotal:      inv.Subtotal,
		Total:         inv.Total,
		TemplateID:    inv.TemplateID,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ==================== Template DTOs ====================

// CreateTemplateRequest represents a request to create an invoice template
type CreateTemplateRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Description     string           `json:"description" binding:"max=1000"`
	DefaultTax      *decimal.Decimal `json:"defaultTax" binding:"omitempty"`
	DefaultDiscount *decimal.Decimal `json:"defaultDiscount" binding:"omitempty"`
	DefaultNotes    string           `json:"defaultNotes" binding:"max=2000"`
	DefaultDueDays  *int             `json:"defaultDueDays" binding:"omitempty,min=0"`
	Items           []LineItemInput  `json:"items" binding:"required,min=1,dive"`
}

// UpdateTemplateRequest represents a partial template update
type UpdateTemplateRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string          `json:"description" binding:"omitempty,max=1000"`
	DefaultTax      *decimal.Decimal `json:"defaultTax" binding:"omitempty"`
	DefaultDiscount *decimal.Decimal `json:"defaultDiscount" binding:"omitempty"`
	DefaultNotes    *string          `json:"defaultNotes" binding:"omitempty,max=2000"`
	DefaultDueDays  *int             `json:"defaultDueDays" binding:"omitempty,min=0"`
	Items           []LineItemInput  `json:"items" binding:"omitempty,dive"`
}

// TemplateItemResponse represents a template line item in API responses
type TemplateItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	TemplateID  uuid.UUID       `json:"templateId"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// TemplateResponse represents a template aggregate in API responses
type TemplateResponse struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	DefaultTax      decimal.Decimal        `json:"defaultTax"`
	DefaultDiscount decimal.Decimal        `json:"defaultDiscount"`
	DefaultNotes    string                 `json:"defaultNotes,omitempty"`
	DefaultDueDays  int                    `json:"defaultDueDays"`
	Items           []TemplateItemResponse `json:"items"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// ToTemplateResponse converts a domain template to a response DTO
func ToTemplateResponse(tpl *invoicing.InvoiceTemplate) TemplateResponse {
	items := make([]TemplateItemResponse, len(tpl.Items))
	for i, item := range tpl.Items {
		items[i] = TemplateItemResponse{
			ID:          item.ID,
			TemplateID:  item.TemplateID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return TemplateResponse{
		ID:              tpl.ID,
		Name:            tpl.Name,
		Description:     tpl.Description,
		DefaultTax:      tpl.DefaultTax,
		DefaultDiscount: tpl.DefaultDiscount,
		DefaultNotes:    tpl.DefaultNotes,
		DefaultDueDays:  tpl.DefaultDueDays,
		Items:           items,
		CreatedAt:       tpl.CreatedAt,
		UpdatedAt:       tpl.UpdatedAt,
	}
}

func toDomainLines(items []LineItemInput) []invoicing.LineInput {
	lines := make([]invoicing.LineInput, len(items))
	for i, item := range items {
		lines[i] = invoicing.LineInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return lines
}
