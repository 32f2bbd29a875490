package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seed inserts a small demo dataset. Idempotent: skipped when customers exist.
func seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	customers := []models.Customer{
		{Name: "Acme Corporation", Email: "contact@acmecorp.com", Phone: "555-123-4567", Address: "123 Business Ave, Suite 100, Business City, 12345"},
		{Name: "Tech Solutions Inc", Email: "info@techsolutions.com", Phone: "555-987-6543", Address: "456 Technology Park, Innovation City, 67890"},
		{Name: "Global Enterprises", Email: "sales@globalenterprises.com", Phone: "555-456-7890", Address: "789 Global Blvd, International District, 54321"},
	}
	for i := range customers {
		db.Create(&customers[i])
	}

	now := time.Now().UTC()

	quotations := []models.Quotation{
		{
			Number: "Q-2023-001", Date: date(2023, time.January, 15), ValidUntil: date(2023, time.February, 15),
			CustomerID: customers[0].ID, TaxRate: 0.20, Subtotal: 2500, TaxAmount: 500, Total: 3000,
			Notes: "Website development project quotation", Status: models.QuotationStatusSent,
			Items: []models.QuotationItem{
				{Description: "Website Design", Quantity: 1, Price: 1500, Amount: 1500},
				{Description: "Frontend Development", Quantity: 1, Price: 1000, Amount: 1000},
			},
		},
		{
			Number: "Q-2023-002", Date: date(2023, time.February, 10), ValidUntil: date(2023, time.March, 10),
			CustomerID: customers[1].ID, TaxRate: 0.20, Subtotal: 5000, TaxAmount: 1000, Total: 6000,
			Notes: "Mobile app development project", Status: models.QuotationStatusAccepted,
			Items: []models.QuotationItem{
				{Description: "Mobile App Design", Quantity: 1, Price: 2000, Amount: 2000},
				{Description: "iOS Development", Quantity: 1, Price: 1500, Amount: 1500},
				{Description: "Android Development", Quantity: 1, Price: 1500, Amount: 1500},
			},
		},
	}
	for i := range quotations {
		db.Create(&quotations[i])
	}

	invoices := []models.Invoice{
		{
			Number: "INV-2023-001", Date: date(2023, time.March, 1), DueDate: date(2023, time.March, 31),
			CustomerID: customers[1].ID, QuotationID: &quotations[1].ID,
			TaxRate: 0.20, Subtotal: 5000, TaxAmount: 1000, Total: 6000, AmountPaid: 3000, Balance: 3000,
			Notes: "Mobile app development, milestone 1", Status: models.InvoiceStatusPending,
			Items: []models.InvoiceItem{
				{Description: "Mobile App Design", Quantity: 1, Price: 2000, Amount: 2000},
				{Description: "iOS Development", Quantity: 1, Price: 1500, Amount: 1500},
				{Description: "Android Development", Quantity: 1, Price: 1500, Amount: 1500},
			},
		},
		{
			// recent paid invoice so the dashboard has data in the current window
			Number: "INV-2023-002", Date: now.AddDate(0, -1, 0), DueDate: now.AddDate(0, 0, -15),
			CustomerID: customers[0].ID,
			TaxRate:    0.20, Subtotal: 1200, TaxAmount: 240, Total: 1440, AmountPaid: 1440, Balance: 0,
			Notes: "Consulting retainer", Status: models.InvoiceStatusPaid,
			Items: []models.InvoiceItem{
				{Description: "Consulting", Quantity: 8, Price: 150, Amount: 1200},
			},
		},
	}
	for i := range invoices {
		db.Create(&invoices[i])
	}
}
