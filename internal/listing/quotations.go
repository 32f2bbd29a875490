package listing

import "github.com/bizdesk/bizdesk/internal/models"

// QuotationSortOptions mirrors the quotation list dropdown.
var QuotationSortOptions = []SortOption[models.Quotation]{
	{Value: "numberAsc", Label: "Number (A-Z)", Field: func(q models.Quotation) FieldValue { return Str(q.Number) }, Direction: Asc},
	{Value: "numberDesc", Label: "Number (Z-A)", Field: func(q models.Quotation) FieldValue { return Str(q.Number) }, Direction: Desc},
	{Value: "dateDesc", Label: "Newest First", Field: func(q models.Quotation) FieldValue { return Date(q.Date) }, Direction: Desc},
	{Value: "dateAsc", Label: "Oldest First", Field: func(q models.Quotation) FieldValue { return Date(q.Date) }, Direction: Asc},
	{Value: "validUntilAsc", Label: "Valid Until (Ascending)", Field: func(q models.Quotation) FieldValue { return Date(q.ValidUntil) }, Direction: Asc},
	{Value: "validUntilDesc", Label: "Valid Until (Descending)", Field: func(q models.Quotation) FieldValue { return Date(q.ValidUntil) }, Direction: Desc},
	{Value: "totalDesc", Label: "Total (High to Low)", Field: func(q models.Quotation) FieldValue { return Num(q.Total) }, Direction: Desc},
	{Value: "totalAsc", Label: "Total (Low to High)", Field: func(q models.Quotation) FieldValue { return Num(q.Total) }, Direction: Asc},
	{Value: "statusAsc", Label: "Status (A-Z)", Field: func(q models.Quotation) FieldValue { return Str(q.Status) }, Direction: Asc},
	{Value: "statusDesc", Label: "Status (Z-A)", Field: func(q models.Quotation) FieldValue { return Str(q.Status) }, Direction: Desc},
}

func quotationSearchFields(q models.Quotation) []string {
	return []string{q.Number, q.Customer.Name, q.Status, q.Notes}
}

func SortQuotations(quotations []models.Quotation, sortKey string) []models.Quotation {
	return Sort(quotations, QuotationSortOptions, sortKey)
}

func FilterQuotations(quotations []models.Quotation, term string) []models.Quotation {
	return Filter(quotations, quotationSearchFields, term)
}

func SortAndFilterQuotations(quotations []models.Quotation, sortKey, term string) []models.Quotation {
	return SortAndFilter(quotations, QuotationSortOptions, quotationSearchFields, sortKey, term)
}
