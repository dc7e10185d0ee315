package invoicing

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
)

// TemplateService handles invoice template business operations
type TemplateService struct {
	templateRepo invoicing.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo invoicing.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create creates a new invoice template
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := invoicing.NewInvoiceTemplate(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	tax := tpl.DefaultTax
	if req.DefaultTax != nil {
		tax = *req.DefaultTax
	}
	discount := tpl.DefaultDiscount
	if req.DefaultDiscount != nil {
		discount = *req.DefaultDiscount
	}
	if err := tpl.SetDefaults(tax, discount, req.DefaultNotes); err != nil {
		return nil, err
	}
	if req.DefaultDueDays != nil {
		if err := tpl.SetDefaultDueDays(*req.DefaultDueDays); err != nil {
			return nil, err
		}
	}
	if err := tpl.ReplaceItems(toDomainLines(req.Items)); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(tpl)
	return &response, nil
}

// GetByID retrieves a template aggregate by ID
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(tpl)
	return &response, nil
}

// List retrieves all templates ordered by creation time
func (s *TemplateService) List(ctx context.Context) ([]TemplateResponse, error) {
	templates, err := s.templateRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateResponse(&templates[i])
	}
	return responses, nil
}

// Update applies a partial update to a template. A non-nil item set
// replaces all existing items.
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tpl.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		tpl.SetDescription(*req.Description)
	}
	if req.DefaultTax != nil || req.DefaultDiscount != nil || req.DefaultNotes != nil {
		tax := tpl.DefaultTax
		if req.DefaultTax != nil {
			tax = *req.DefaultTax
		}
		discount := tpl.DefaultDiscount
		if req.DefaultDiscount != nil {
			discount = *req.DefaultDiscount
		}
		notes := tpl.DefaultNotes
		if req.DefaultNotes != nil {
			notes = *req.DefaultNotes
		}
		if err := tpl.SetDefaults(tax, discount, notes); err != nil {
			return nil, err
		}
	}
	if req.DefaultDueDays != nil {
		if err := tpl.SetDefaultDueDays(*req.DefaultDueDays); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		if err := tpl.ReplaceItems(toDomainLines(req.Items)); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(tpl)
	return &response, nil
}

// Delete removes a template together with its items
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.Delete(ctx, id)
}
