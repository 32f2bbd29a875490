package models

import "time"

// Quotation statuses.
const (
	QuotationStatusDraft    = "Draft"
	QuotationStatusSent     = "Sent"
	QuotationStatusAccepted = "Accepted"
	QuotationStatusDeclined = "Declined"
	QuotationStatusExpired  = "Expired"
)

// Quotation (devis). Monetary fields are derived from Items and TaxRate and
// recomputed on every write path.
type Quotation struct {
	ID                 uint      `gorm:"primaryKey"`
	Number             string    `gorm:"not null;uniqueIndex"`
	Date               time.Time `gorm:"not null;index"`
	ValidUntil         time.Time
	CustomerID         uint            `gorm:"not null;index"`
	Customer           Customer        `gorm:"foreignKey:CustomerID"`
	Items              []QuotationItem `gorm:"foreignKey:QuotationID"`
	TaxRate            float64         // fraction, ex: 0.20
	Subtotal           float64
	TaxAmount          float64
	Total              float64
	Status             string `gorm:"not null;default:'Draft'"` // Draft, Sent, Accepted, Declined, Expired
	Notes              string
	ConvertedInvoiceID *uint // set when the quotation has been converted to an invoice
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type QuotationItem struct {
	ID          uint `gorm:"primaryKey"`
	QuotationID uint `gorm:"not null;index"`
	Description string
	Quantity    float64 `gorm:"not null"`
	Price       float64
	Amount      float64 // always Quantity * Price
}
