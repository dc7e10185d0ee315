package localstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
)

// TemplateRepository implements invoicing.TemplateRepository on top of
// a Store
type TemplateRepository struct {
	store *Store
}

// NewTemplateRepository creates a file-backed template repository
func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

// FindByID retrieves a template by its id
func (r *TemplateRepository) FindByID(_ context.Context, id uuid.UUID) (*invoicing.InvoiceTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tpl, ok := r.store.templates[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneTemplate(tpl), nil
}

// FindAll returns templates ordered by creation time
func (r *TemplateRepository) FindAll(_ context.Context, filter shared.Filter) ([]invoicing.InvoiceTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := make([]invoicing.InvoiceTemplate, 0, len(r.store.templates))
	for _, tpl := range r.store.templates {
		results = append(results, *cloneTemplate(tpl))
	}

	desc := filter.OrderDir == "desc"
	sort.Slice(results, func(i, j int) bool {
		if desc {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})

	return paginate(results, filter), nil
}

// Save inserts or replaces the template with its full item set
func (r *TemplateRepository) Save(_ context.Context, tpl *invoicing.InvoiceTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prev, existed := r.store.templates[tpl.ID]
	r.store.templates[tpl.ID] = cloneTemplate(tpl)
	if err := r.store.persistLocked(); err != nil {
		if existed {
			r.store.templates[tpl.ID] = prev
		} else {
			delete(r.store.templates, tpl.ID)
		}
		return err
	}
	return nil
}

// Delete removes the template and its items. Invoices created from the
// template keep their copied values; only the reference goes stale.
func (r *TemplateRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tpl, ok := r.store.templates[id]
	if !ok {
		return shared.ErrNotFound
	}

	delete(r.store.templates, id)
	if err := r.store.persistLocked(); err != nil {
		r.store.templates[id] = tpl
		return err
	}
	return nil
}

// Count returns the number of stored templates
func (r *TemplateRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.templates)), nil
}
