package scheduler

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

func TestSweepStatuses(t *testing.T) {
	db := setupTestDB(t)
	c := models.Customer{Name: "Acme"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	now := time.Now()

	invoices := []models.Invoice{
		{Number: "INV-1", Date: now.AddDate(0, -2, 0), DueDate: now.AddDate(0, 0, -5), CustomerID: c.ID, Status: models.InvoiceStatusPending},
		{Number: "INV-2", Date: now, DueDate: now.AddDate(0, 0, 20), CustomerID: c.ID, Status: models.InvoiceStatusPending},
		{Number: "INV-3", Date: now.AddDate(0, -2, 0), DueDate: now.AddDate(0, 0, -5), CustomerID: c.ID, Status: models.InvoiceStatusPaid},
	}
	for i := range invoices {
		if err := db.Create(&invoices[i]).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	quotations := []models.Quotation{
		{Number: "Q-1", Date: now.AddDate(0, -2, 0), ValidUntil: now.AddDate(0, 0, -1), CustomerID: c.ID, Status: models.QuotationStatusSent},
		{Number: "Q-2", Date: now, ValidUntil: now.AddDate(0, 1, 0), CustomerID: c.ID, Status: models.QuotationStatusSent},
		{Number: "Q-3", Date: now.AddDate(0, -2, 0), ValidUntil: now.AddDate(0, 0, -1), CustomerID: c.ID, Status: models.QuotationStatusAccepted},
	}
	for i := range quotations {
		if err := db.Create(&quotations[i]).Error; err != nil {
			t.Fatalf("seed quotation: %v", err)
		}
	}

	overdue, expired, err := SweepStatuses(db, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if overdue != 1 || expired != 1 {
		t.Fatalf("expected 1 overdue and 1 expired, got %d/%d", overdue, expired)
	}

	var inv models.Invoice
	if err := db.Where("number = ?", "INV-1").First(&inv).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if inv.Status != models.InvoiceStatusOverdue {
		t.Fatalf("past-due pending invoice should be Overdue, got %s", inv.Status)
	}
	var paid models.Invoice
	if err := db.Where("number = ?", "INV-3").First(&paid).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if paid.Status != models.InvoiceStatusPaid {
		t.Fatalf("paid invoice must not be touched, got %s", paid.Status)
	}
	var q models.Quotation
	if err := db.Where("number = ?", "Q-1").First(&q).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if q.Status != models.QuotationStatusExpired {
		t.Fatalf("stale sent quotation should be Expired, got %s", q.Status)
	}

	// idempotent
	overdue, expired, err = SweepStatuses(db, now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if overdue != 0 || expired != 0 {
		t.Fatalf("second sweep should touch nothing, got %d/%d", overdue, expired)
	}
}
