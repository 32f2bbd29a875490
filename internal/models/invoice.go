package models

import "time"

// Invoice statuses. An invoice partially paid stays Pending with AmountPaid > 0.
const (
	InvoiceStatusDraft     = "Draft"
	InvoiceStatusPending   = "Pending"
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusOverdue   = "Overdue"
	InvoiceStatusCancelled = "Cancelled"
)

// Invoice (facture). Same derived-field contract as Quotation, plus
// Balance = Total - AmountPaid. Balance may go negative on overpayment;
// callers rely on the sign to detect it, so it is never clamped.
type Invoice struct {
	ID          uint      `gorm:"primaryKey"`
	Number      string    `gorm:"not null;uniqueIndex"`
	Date        time.Time `gorm:"not null;index"`
	DueDate     time.Time `gorm:"index"`
	CustomerID  uint      `gorm:"not null;index"`
	Customer    Customer  `gorm:"foreignKey:CustomerID"`
	QuotationID *uint     // back-reference when created from a quotation
	Quotation   *Quotation
	Items       []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	TaxRate     float64
	Subtotal    float64
	TaxAmount   float64
	Total       float64
	AmountPaid  float64
	Balance     float64
	Status      string `gorm:"not null;default:'Draft'"` // Draft, Pending, Paid, Overdue, Cancelled
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InvoiceItem struct {
	ID          uint `gorm:"primaryKey"`
	InvoiceID   uint `gorm:"not null;index"`
	Description string
	Quantity    float64 `gorm:"not null"`
	Price       float64
	Amount      float64 // always Quantity * Price
}
