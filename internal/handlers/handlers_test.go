package handlers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Quotation{}, &models.QuotationItem{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, Email: "test@" + name + ".com"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, customerID uint, number string, total, paid float64, status string) models.Invoice {
	t.Helper()
	inv := models.Invoice{
		Number: number, Date: time.Now(), DueDate: time.Now().AddDate(0, 0, 30),
		CustomerID: customerID, TaxRate: 0,
		Subtotal: total, Total: total, AmountPaid: paid, Balance: total - paid, Status: status,
		Items: []models.InvoiceItem{{Description: "work", Quantity: 1, Price: total, Amount: total}},
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}
