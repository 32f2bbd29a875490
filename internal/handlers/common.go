package handlers

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/finance"
)

// itemReq is the wire shape of a line-item row on create/update.
type itemReq struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// buildLineItems turns request rows into computed line items. Negative
// quantities and prices are rejected here, at the form boundary; finiteness
// is re-checked by the finance package when totals are derived.
func buildLineItems(items []itemReq) ([]finance.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}
	out := make([]finance.LineItem, len(items))
	for i, it := range items {
		if it.Quantity < 0 || it.Price < 0 {
			return nil, fmt.Errorf("item %d: quantity and price must not be negative", i+1)
		}
		out[i] = finance.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Amount:      it.Quantity * it.Price,
		}
	}
	return out, nil
}

// parseDate accepts the date-only form format or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// nextNumber allocates the next document number in the INV-2023-001 /
// Q-2023-001 scheme by counting existing rows for the year.
func nextNumber(db *gorm.DB, model any, prefix string, date time.Time) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, date.Year())
	var count int64
	if err := db.Model(model).Where("number LIKE ?", pattern).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, date.Year(), count+1), nil
}

func validStatus(status string, allowed ...string) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}
