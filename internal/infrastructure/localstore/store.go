// Package localstore provides a single-file JSON storage backend. It
// keeps the full data set in memory behind a mutex and rewrites the
// file atomically on every mutation, which is plenty for small
// single-process deployments and for running without a database.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/invoicely/backend/internal/domain/invoicing"
)

// Store owns the backing file and the in-memory data set
type Store struct {
	path string

	mu        sync.RWMutex
	invoices  map[uuid.UUID]*invoicing.Invoice
	templates map[uuid.UUID]*invoicing.InvoiceTemplate
}

type fileData struct {
	Invoices  []*invoicing.Invoice         `json:"invoices"`
	Templates []*invoicing.InvoiceTemplate `json:"templates"`
}

// Open loads the store from path, creating the parent directory and an
// empty data set when the file does not exist yet
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("localstore path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s := &Store{
		path:      path,
		invoices:  make(map[uuid.UUID]*invoicing.Invoice),
		templates: make(map[uuid.UUID]*invoicing.InvoiceTemplate),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	for _, inv := range data.Invoices {
		s.invoices[inv.ID] = inv
	}
	for _, tpl := range data.Templates {
		s.templates[tpl.ID] = tpl
	}
	return s, nil
}

// persistLocked writes the data set to a temp file and renames it over
// the target so readers never observe a partial file. Callers must hold
// the write lock.
func (s *Store) persistLocked() error {
	data := fileData{
		Invoices:  make([]*invoicing.Invoice, 0, len(s.invoices)),
		Templates: make([]*invoicing.InvoiceTemplate, 0, len(s.templates)),
	}
	for _, inv := range s.invoices {
		data.Invoices = append(data.Invoices, inv)
	}
	for _, tpl := range s.templates {
		data.Templates = append(data.Templates, tpl)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func cloneInvoice(inv *invoicing.Invoice) *invoicing.Invoice {
	copied := *inv
	copied.Items = make([]invoicing.InvoiceItem, len(inv.Items))
	copy(copied.Items, inv.Items)
	if inv.TemplateID != nil {
		id := *inv.TemplateID
		copied.TemplateID = &id
	}
	return &copied
}

func cloneTemplate(tpl *invoicing.InvoiceTemplate) *invoicing.InvoiceTemplate {
	copied := *tpl
	copied.Items = make([]invoicing.TemplateItem, len(tpl.Items))
	copy(copied.Items, tpl.Items)
	return &copied
}
