package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_number"`
	ClientName    string                   `gorm:"type:varchar(200);not null"`
	ClientEmail   string                   `gorm:"type:varchar(200);not null"`
	ClientAddress string                   `gorm:"type:varchar(500);not null"`
	InvoiceDate   string                   `gorm:"type:varchar(10);not null"`
	DueDate       string                   `gorm:"type:varchar(10);not null"`
	Status        invoicing.InvoiceStatus  `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes         string                   `gorm:"type:text"`
	Tax           decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Subtotal      decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	TemplateID    *uuid.UUID               `gorm:"type:uuid;index"`
	Items         []InvoiceItemModel       `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                `gorm:"not null;index"`
	UpdatedAt     time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for invoice line items.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_invoice_items_invoice_id"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int64           `gorm:"not null;default:1"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		InvoiceNumber: m.InvoiceNumber,
		ClientName:    m.ClientName,
		ClientEmail:   m.ClientEmail,
		ClientAddress: m.ClientAddress,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		Status:        m.Status,
		Notes:         m.Notes,
		Tax:           m.Tax,
		Discount:      m.Discount,
		Subtotal:      m.Subtotal,
		Total:         m.Total,
		TemplateID:    m.TemplateID,
		Items:         make([]invoicing.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = invoicing.InvoiceItem{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Amount:      item.Total,
			CreatedAt:   item.CreatedAt,
		}
	}
	return inv
}

// InvoiceModelFromDomain converts a domain Invoice to the persistence model.
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientAddress: inv.ClientAddress,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		Notes:         inv.Notes,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Subtotal:      inv.Subtotal,
		Total:         inv.Total,
		TemplateID:    inv.TemplateID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Items:         make([]InvoiceItemModel, len(inv.Items)),
	}
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Amount,
			CreatedAt:   item.CreatedAt,
		}
	}
	return m
}

// InvoiceTemplateModel is the persistence model for invoice templates.
type InvoiceTemplateModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name            string              `gorm:"type:varchar(200);not null"`
	Description     string              `gorm:"type:varchar(1000)"`
	DefaultTax      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DefaultDiscount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DefaultNotes    string              `gorm:"type:text"`
	DefaultDueDays  int                 `gorm:"not null;default:30"`
	Items           []TemplateItemModel `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"not null;index"`
	UpdatedAt       time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceTemplateModel) TableName() string {
	return "invoice_templates"
}

// TemplateItemModel is the persistence model for template line items.
type TemplateItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TemplateID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_template_items_template_id"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int64           `gorm:"not null;default:1"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TemplateItemModel) TableName() string {
	return "template_items"
}

// ToDomain converts the persistence model to a domain InvoiceTemplate aggregate.
func (m *InvoiceTemplateModel) ToDomain() *invoicing.InvoiceTemplate {
	tpl := &invoicing.InvoiceTemplate{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:            m.Name,
		Description:     m.Description,
		DefaultTax:      m.DefaultTax,
		DefaultDiscount: m.DefaultDiscount,
		DefaultNotes:    m.DefaultNotes,
		DefaultDueDays:  m.DefaultDueDays,
		Items:           make([]invoicing.TemplateItem, len(m.Items)),
	}
	for i, item := range m.Items {
		tpl.Items[i] = invoicing.TemplateItem{
			ID:          item.ID,
			TemplateID:  item.TemplateID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		}
	}
	return tpl
}

// TemplateModelFromDomain converts a domain InvoiceTemplate to the persistence model.
func TemplateModelFromDomain(tpl *invoicing.InvoiceTemplate) *InvoiceTemplateModel {
	m := &InvoiceTemplateModel{
		ID:              tpl.ID,
		Name:            tpl.Name,
		Description:     tpl.Description,
		DefaultTax:      tpl.DefaultTax,
		DefaultDiscount: tpl.DefaultDiscount,
		DefaultNotes:    tpl.DefaultNotes,
		DefaultDueDays:  tpl.DefaultDueDays,
		CreatedAt:       tpl.CreatedAt,
		UpdatedAt:       tpl.UpdatedAt,
		Items:           make([]TemplateItemModel, len(tpl.Items)),
	}
	for i, item := range tpl.Items {
		m.Items[i] = TemplateItemModel{
			ID:          item.ID,
			TemplateID:  item.TemplateID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		}
	}
	return m
}
