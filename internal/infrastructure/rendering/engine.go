// Package rendering turns invoice aggregates into printable HTML
// documents using Go's html/template with custom formatting functions.
package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/invoicely/backend/internal/domain/invoicing"
)

//go:embed templates/*.html
var templateFS embed.FS

const invoiceTemplate = "invoice_a4.html"

// Engine renders invoices with the embedded A4 template
type Engine struct {
	templates *template.Template
}

// NewEngine parses the embedded templates and returns an engine ready
// to render
func NewEngine() (*Engine, error) {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse document templates: %w", err)
	}
	return &Engine{templates: tmpl}, nil
}

// invoiceView is the data handed to the invoice template
type invoiceView struct {
	Invoice     *invoicing.Invoice
	GeneratedAt time.Time
}

// RenderInvoice produces the printable HTML document for an invoice
func (e *Engine) RenderInvoice(inv *invoicing.Invoice) (string, error) {
	var buf bytes.Buffer
	view := invoiceView{
		Invoice:     inv,
		GeneratedAt: time.Now(),
	}
	if err := e.templates.ExecuteTemplate(&buf, invoiceTemplate, view); err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"title":          titleCase,
		"upper":          strings.ToUpper,
		"statusText":     statusText,
	}
}

// formatMoney formats a decimal value as currency with symbol.
// Example: 1234.56 -> "$1,234.56"
func formatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + formatMoneyRaw(d.Abs())
	}
	return "$" + formatMoneyRaw(d)
}

// formatMoneyRaw formats a decimal value as currency without symbol.
// Example: 1234.56 -> "1,234.56"
func formatMoneyRaw(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

// formatDate reformats a calendar date string for display.
// Example: "2026-01-15" -> "January 15, 2026"
func formatDate(value string) string {
	t, err := time.Parse(invoicing.DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format("January 2, 2006")
}

// formatDateTime formats a timestamp for display.
// Example: time.Now() -> "2026-01-15 14:30:00"
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// statusText maps an invoice status to its display label
func statusText(status invoicing.InvoiceStatus) string {
	switch status {
	case invoicing.StatusDraft:
		return "Draft"
	case invoicing.StatusSent:
		return "Sent"
	case invoicing.StatusPaid:
		return "Paid"
	case invoicing.StatusOverdue:
		return "Overdue"
	default:
		return titleCase(string(status))
	}
}
