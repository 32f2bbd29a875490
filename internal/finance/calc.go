// Package finance keeps the derived monetary fields of quotations and
// invoices consistent with their line items, tax rate and amount paid.
//
// Everything here is pure: inputs are never mutated, no state is retained
// between calls, and all arithmetic is plain float64 (rounding to two
// decimals is a presentation concern and happens nowhere in this package).
package finance

import (
	"math"
	"strconv"
	"strings"
)

// LineItem is the computation-side view of a quotation or invoice row.
type LineItem struct {
	ID          uint
	Description string
	Quantity    float64
	Price       float64
	Amount      float64
}

// Totals holds the derived monetary fields of a document. Balance is only
// meaningful when produced by InvoiceTotals.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
	Balance   float64
}

// ItemField names an editable line-item field.
type ItemField string

const (
	FieldDescription ItemField = "description"
	FieldQuantity    ItemField = "quantity"
	FieldPrice       ItemField = "price"
)

// ParseAmount parses a numeric form value. Malformed or non-finite input is
// rejected with a ComputationError rather than coerced to zero or NaN.
func ParseAmount(field, value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, computationErrf(field, value, "empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, computationErrf(field, value, "not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, computationErrf(field, value, "not finite")
	}
	return f, nil
}

// ApplyItemEdit applies a single field edit to a line item and keeps
// Amount = Quantity * Price. The input item is left untouched.
// Negative quantities and prices are a form-boundary concern, not checked here.
func ApplyItemEdit(item LineItem, field ItemField, value string) (LineItem, error) {
	out := item
	switch field {
	case FieldDescription:
		out.Description = value
		return out, nil
	case FieldQuantity:
		q, err := ParseAmount(string(field), value)
		if err != nil {
			return item, err
		}
		out.Quantity = q
	case FieldPrice:
		p, err := ParseAmount(string(field), value)
		if err != nil {
			return item, err
		}
		out.Price = p
	default:
		return item, computationErrf(string(field), value, "unknown item field")
	}
	out.Amount = out.Quantity * out.Price
	return out, nil
}

// DocumentTotals computes subtotal, tax amount and total for a set of line
// items. Item order is irrelevant and an empty list yields zeros. Idempotent
// and side-effect-free; call it after every item, tax-rate or amount-paid
// change. The tax rate is normally a fraction in [0,1] but is not clamped,
// range validation belongs to the form boundary.
func DocumentTotals(items []LineItem, taxRate float64) (Totals, error) {
	if math.IsNaN(taxRate) || math.IsInf(taxRate, 0) {
		return Totals{}, computationErrf("taxRate", "", "not finite")
	}
	var subtotal float64
	for _, it := range items {
		if math.IsNaN(it.Amount) || math.IsInf(it.Amount, 0) {
			return Totals{}, computationErrf("amount", it.Description, "not finite")
		}
		subtotal += it.Amount
	}
	tax := subtotal * taxRate
	return Totals{Subtotal: subtotal, TaxAmount: tax, Total: subtotal + tax}, nil
}

// InvoiceTotals is DocumentTotals plus Balance = Total - amountPaid.
// Balance goes negative on overpayment and is deliberately not clamped so
// callers can detect it.
func InvoiceTotals(items []LineItem, taxRate, amountPaid float64) (Totals, error) {
	if math.IsNaN(amountPaid) || math.IsInf(amountPaid, 0) {
		return Totals{}, computationErrf("amountPaid", "", "not finite")
	}
	t, err := DocumentTotals(items, taxRate)
	if err != nil {
		return Totals{}, err
	}
	t.Balance = t.Total - amountPaid
	return t, nil
}

// AddItem returns a new slice with a fresh row appended. New rows start at
// quantity 1, price 0, amount 0, matching the editing forms. Totals are not
// recomputed here; callers follow up with DocumentTotals.
func AddItem(items []LineItem) []LineItem {
	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, LineItem{Quantity: 1})
}

// RemoveItem returns a new slice without the row at index. A document always
// keeps at least one line item, so removal from a single-item list is a
// no-op returning the input unchanged, as is an out-of-range index.
func RemoveItem(items []LineItem, index int) []LineItem {
	if len(items) <= 1 || index < 0 || index >= len(items) {
		return items
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out
}
