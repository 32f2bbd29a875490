package models

import "github.com/bizdesk/bizdesk/internal/finance"

// LineItems converts the quotation rows to their computation-side view.
func (q *Quotation) LineItems() []finance.LineItem {
	out := make([]finance.LineItem, len(q.Items))
	for i, it := range q.Items {
		out[i] = finance.LineItem{ID: it.ID, Description: it.Description, Quantity: it.Quantity, Price: it.Price, Amount: it.Amount}
	}
	return out
}

// LineItems converts the invoice rows to their computation-side view.
func (inv *Invoice) LineItems() []finance.LineItem {
	out := make([]finance.LineItem, len(inv.Items))
	for i, it := range inv.Items {
		out[i] = finance.LineItem{ID: it.ID, Description: it.Description, Quantity: it.Quantity, Price: it.Price, Amount: it.Amount}
	}
	return out
}

// QuotationItemsFrom builds storage rows from computed line items.
func QuotationItemsFrom(items []finance.LineItem) []QuotationItem {
	out := make([]QuotationItem, len(items))
	for i, it := range items {
		out[i] = QuotationItem{Description: it.Description, Quantity: it.Quantity, Price: it.Price, Amount: it.Amount}
	}
	return out
}

// InvoiceItemsFrom builds storage rows from computed line items.
func InvoiceItemsFrom(items []finance.LineItem) []InvoiceItem {
	out := make([]InvoiceItem, len(items))
	for i, it := range items {
		out[i] = InvoiceItem{Description: it.Description, Quantity: it.Quantity, Price: it.Price, Amount: it.Amount}
	}
	return out
}
