package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invoicely/backend/internal/domain/invoicing"
)

// DocumentRenderer turns an invoice aggregate into a printable HTML
// document
type DocumentRenderer interface {
	RenderInvoice(inv *invoicing.Invoice) (string, error)
}

// DocumentCache stores rendered documents keyed by invoice revision.
// A miss is reported via the bool, not the error.
type DocumentCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DocumentService renders printable invoice documents, memoizing the
// result per invoice revision. Cache keys carry the UpdatedAt timestamp
// so a mutated invoice never serves a stale document; superseded
// entries simply age out via TTL.
type DocumentService struct {
	invoiceRepo invoicing.InvoiceRepository
	renderer    DocumentRenderer
	cache       DocumentCache
	cacheTTL    time.Duration
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(invoiceRepo invoicing.InvoiceRepository, renderer DocumentRenderer, cache DocumentCache, cacheTTL time.Duration) *DocumentService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &DocumentService{
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// Render produces the printable HTML document for an invoice
func (s *DocumentService) Render(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := documentKey(inv)
	if s.cache != nil {
		// Cache failures degrade to a render, never to an error
		if html, ok, cerr := s.cache.Get(ctx, key); cerr == nil && ok {
			return html, nil
		}
	}

	html, err := s.renderer.RenderInvoice(inv)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, html, s.cacheTTL)
	}
	return html, nil
}

func documentKey(inv *invoicing.Invoice) string {
	return fmt.Sprintf("invoice:doc:%s:%d", inv.ID, inv.UpdatedAt.UnixNano())
}
