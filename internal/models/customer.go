package models

import "time"

// Customer entity. Referenced by quotations and invoices via CustomerID.
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;index"`
	Email     string `gorm:"index"`
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
