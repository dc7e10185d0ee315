package invoicing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Line is the quantity/price pair that contributes to an invoice total
type Line struct {
	Quantity int64
	Price    decimal.Decimal
}

// ComputeTotals derives the subtotal and total of an invoice.
// The subtotal is the sum of quantity times price over all lines, and
// the total adds tax and subtracts the discount. A discount larger than
// subtotal plus tax yields a negative total; clamping is left to the
// caller's judgement, not done here.
func ComputeTotals(lines []Line, tax, discount decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	total = subtotal.Add(tax).Sub(discount)
	return subtotal, total
}

// GenerateInvoiceNumber produces a human-readable invoice number of the
// form INV-YYYYMM-NNNN. The numeric suffix is random, so uniqueness is
// enforced at persistence time and callers retry on collision.
func GenerateInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%04d", time.Now().Format("200601"), rand.Intn(10000))
}
