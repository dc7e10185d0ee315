package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
	"github.com/invoicely/backend/internal/infrastructure/persistence/models"
)

// GormTemplateRepository is the GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID retrieves a template aggregate with its items
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.InvoiceTemplate, error) {
	var model models.InvoiceTemplateModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("template_items.created_at ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll retrieves template aggregates matching the filter
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.InvoiceTemplate, error) {
	var rows []models.InvoiceTemplateModel

	query := r.db.WithContext(ctx).Model(&models.InvoiceTemplateModel{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("template_items.created_at ASC")
		}).
		Order(orderClause(filter, TemplateSortFields))

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]invoicing.InvoiceTemplate, len(rows))
	for i := range rows {
		templates[i] = *rows[i].ToDomain()
	}
	return templates, nil
}

// Save persists the template and its full item set atomically, replacing
// existing items wholesale
func (r *GormTemplateRepository) Save(ctx context.Context, tpl *invoicing.InvoiceTemplate) error {
	model := models.TemplateModelFromDomain(tpl)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", model.ID).Delete(&models.TemplateItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// Delete removes the template together with its items
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete template items: %w", err)
		}
		result := tx.Delete(&models.InvoiceTemplateModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete template: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of templates
func (r *GormTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceTemplateModel{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}
