package listing

import "github.com/bizdesk/bizdesk/internal/models"

// InvoiceSortOptions mirrors the invoice list dropdown.
var InvoiceSortOptions = []SortOption[models.Invoice]{
	{Value: "numberAsc", Label: "Number (A-Z)", Field: func(i models.Invoice) FieldValue { return Str(i.Number) }, Direction: Asc},
	{Value: "numberDesc", Label: "Number (Z-A)", Field: func(i models.Invoice) FieldValue { return Str(i.Number) }, Direction: Desc},
	{Value: "dateDesc", Label: "Newest First", Field: func(i models.Invoice) FieldValue { return Date(i.Date) }, Direction: Desc},
	{Value: "dateAsc", Label: "Oldest First", Field: func(i models.Invoice) FieldValue { return Date(i.Date) }, Direction: Asc},
	{Value: "dueDateAsc", Label: "Due Date (Ascending)", Field: func(i models.Invoice) FieldValue { return Date(i.DueDate) }, Direction: Asc},
	{Value: "dueDateDesc", Label: "Due Date (Descending)", Field: func(i models.Invoice) FieldValue { return Date(i.DueDate) }, Direction: Desc},
	{Value: "totalDesc", Label: "Total (High to Low)", Field: func(i models.Invoice) FieldValue { return Num(i.Total) }, Direction: Desc},
	{Value: "totalAsc", Label: "Total (Low to High)", Field: func(i models.Invoice) FieldValue { return Num(i.Total) }, Direction: Asc},
	{Value: "statusAsc", Label: "Status (A-Z)", Field: func(i models.Invoice) FieldValue { return Str(i.Status) }, Direction: Asc},
	{Value: "statusDesc", Label: "Status (Z-A)", Field: func(i models.Invoice) FieldValue { return Str(i.Status) }, Direction: Desc},
}

func invoiceSearchFields(i models.Invoice) []string {
	return []string{i.Number, i.Customer.Name, i.Status, i.Notes}
}

func SortInvoices(invoices []models.Invoice, sortKey string) []models.Invoice {
	return Sort(invoices, InvoiceSortOptions, sortKey)
}

func FilterInvoices(invoices []models.Invoice, term string) []models.Invoice {
	return Filter(invoices, invoiceSearchFields, term)
}

func SortAndFilterInvoices(invoices []models.Invoice, sortKey, term string) []models.Invoice {
	return SortAndFilter(invoices, InvoiceSortOptions, invoiceSearchFields, sortKey, term)
}
