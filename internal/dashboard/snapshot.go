package dashboard

import (
	"time"

	"github.com/bizdesk/bizdesk/internal/models"
)

// Snapshot bundles every dashboard view model for one data refresh. It is
// what the dashboard endpoint returns and what the cache stores.
type Snapshot struct {
	Stats        Stats             `json:"stats"`
	Revenue      []RevenuePoint    `json:"revenue"`
	Statuses     []StatusCount     `json:"statuses"`
	TopCustomers []CustomerRevenue `json:"topCustomers"`
	Comparison   []ComparisonPoint `json:"comparison"`
	Aging        []AgingBucket     `json:"aging"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

// TopCustomerLimit is the chart's fixed group count.
const TopCustomerLimit = 5

// BuildSnapshot runs all six reductions over one snapshot of the data.
func BuildSnapshot(invoices []models.Invoice, quotations []models.Quotation, customers []models.Customer, today time.Time) Snapshot {
	return Snapshot{
		Stats:        Summary(invoices, quotations, customers),
		Revenue:      RevenueByMonth(invoices, today),
		Statuses:     StatusHistogram(invoices),
		TopCustomers: TopCustomersByRevenue(invoices, TopCustomerLimit),
		Comparison:   MonthlyComparison(invoices, quotations, today),
		Aging:        AgingBuckets(invoices, today),
		GeneratedAt:  today,
	}
}
