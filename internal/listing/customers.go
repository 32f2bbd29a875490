package listing

import "github.com/bizdesk/bizdesk/internal/models"

// CustomerSortOptions mirrors the customer list dropdown.
var CustomerSortOptions = []SortOption[models.Customer]{
	{Value: "nameAsc", Label: "Name (A-Z)", Field: func(c models.Customer) FieldValue { return Str(c.Name) }, Direction: Asc},
	{Value: "nameDesc", Label: "Name (Z-A)", Field: func(c models.Customer) FieldValue { return Str(c.Name) }, Direction: Desc},
	{Value: "emailAsc", Label: "Email (A-Z)", Field: func(c models.Customer) FieldValue { return Str(c.Email) }, Direction: Asc},
	{Value: "emailDesc", Label: "Email (Z-A)", Field: func(c models.Customer) FieldValue { return Str(c.Email) }, Direction: Desc},
	{Value: "newest", Label: "Newest First", Field: func(c models.Customer) FieldValue { return Date(c.CreatedAt) }, Direction: Desc},
	{Value: "oldest", Label: "Oldest First", Field: func(c models.Customer) FieldValue { return Date(c.CreatedAt) }, Direction: Asc},
}

func customerSearchFields(c models.Customer) []string {
	return []string{c.Name, c.Email, c.Phone, c.Address}
}

func SortCustomers(customers []models.Customer, sortKey string) []models.Customer {
	return Sort(customers, CustomerSortOptions, sortKey)
}

func FilterCustomers(customers []models.Customer, term string) []models.Customer {
	return Filter(customers, customerSearchFields, term)
}

func SortAndFilterCustomers(customers []models.Customer, sortKey, term string) []models.Customer {
	return SortAndFilter(customers, CustomerSortOptions, customerSearchFields, sortKey, term)
}
