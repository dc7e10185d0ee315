package localstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/invoicely/backend/internal/domain/invoicing"
	"github.com/invoicely/backend/internal/domain/shared"
)

// InvoiceRepository implements invoicing.InvoiceRepository on top of a
// Store
type InvoiceRepository struct {
	store *Store
}

// NewInvoiceRepository creates a file-backed invoice repository
func NewInvoiceRepository(store *Store) *InvoiceRepository {
	return &InvoiceRepository{store: store}
}

// FindByID retrieves an invoice by its id
func (r *InvoiceRepository) FindByID(_ context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneInvoice(inv), nil
}

// FindAll returns invoices ordered by creation time, optionally
// filtered by status and paginated
func (r *InvoiceRepository) FindAll(_ context.Context, filter shared.Filter) ([]invoicing.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := make([]invoicing.Invoice, 0, len(r.store.invoices))
	status, _ := filter.Filters["status"].(string)
	for _, inv := range r.store.invoices {
		if status != "" && string(inv.Status) != status {
			continue
		}
		results = append(results, *cloneInvoice(inv))
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

// Save inserts or replaces the invoice with its full item set. The
// invoice number must be unique across all other invoices.
func (r *InvoiceRepository) Save(_ context.Context, inv *invoicing.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.invoices {
		if id != inv.ID && existing.InvoiceNumber == inv.InvoiceNumber {
			return shared.ErrAlreadyExists
		}
	}

	prev, existed := r.store.invoices[inv.ID]
	r.store.invoices[inv.ID] = cloneInvoice(inv)
	if err := r.store.persistLocked(); err != nil {
		if existed {
			r.store.invoices[inv.ID] = prev
		} else {
			delete(r.store.invoices, inv.ID)
		}
		return err
	}
	return nil
}

// Delete removes the invoice and its items
func (r *InvoiceRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inv, ok := r.store.invoices[id]
	if !ok {
		return shared.ErrNotFound
	}

	delete(r.store.invoices, id)
	if err := r.store.persistLocked(); err != nil {
		r.store.invoices[id] = inv
		return err
	}
	return nil
}

// Count returns the number of invoices matching the filter
func (r *InvoiceRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	status, _ := filter.Filters["status"].(string)
	if status == "" {
		return int64(len(r.store.invoices)), nil
	}

	var count int64
	for _, inv := range r.store.invoices {
		if string(inv.Status) == status {
			count++
		}
	}
	return count, nil
}

// paginate applies the filter's page window. A zero page size returns
// the full slice.
func paginate[T any](items []T, filter shared.Filter) []T {
	if filter.PageSize <= 0 {
		return items
	}
	offset := filter.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := offset + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
