// Package dashboard folds invoice, quotation and customer collections into
// the view models the dashboard renders. All functions are pure reductions
// over a snapshot: inputs are never mutated, nothing is kept between calls,
// and "today" is always a parameter so time-dependent views stay testable.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/bizdesk/bizdesk/internal/models"
)

type Stats struct {
	TotalInvoices       int     `json:"totalInvoices"`
	TotalQuotations     int     `json:"totalQuotations"`
	TotalCustomers      int     `json:"totalCustomers"`
	TotalRevenue        float64 `json:"totalRevenue"`
	OutstandingBalance  float64 `json:"outstandingBalance"`
	AverageInvoiceValue float64 `json:"averageInvoiceValue"`
}

type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type CustomerRevenue struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type ComparisonPoint struct {
	Month      string `json:"month"`
	Invoices   int    `json:"invoices"`
	Quotations int    `json:"quotations"`
}

type AgingBucket struct {
	Range  string  `json:"range"`
	Amount float64 `json:"amount"`
}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var agingRanges = [5]string{"Current", "1-30 Days", "31-60 Days", "61-90 Days", "90+ Days"}

// Summary computes the headline counters. Outstanding balance is a plain sum,
// so overpaid invoices subtract from it.
func Summary(invoices []models.Invoice, quotations []models.Quotation, customers []models.Customer) Stats {
	var revenue, outstanding float64
	for _, inv := range invoices {
		revenue += inv.Total
		outstanding += inv.Balance
	}
	avg := 0.0
	if len(invoices) > 0 {
		avg = revenue / float64(len(invoices))
	}
	return Stats{
		TotalInvoices:       len(invoices),
		TotalQuotations:     len(quotations),
		TotalCustomers:      len(customers),
		TotalRevenue:        revenue,
		OutstandingBalance:  outstanding,
		AverageInvoiceValue: avg,
	}
}

// monthDiff counts calendar months between a document date and today,
// ignoring the day of month.
func monthDiff(today, date time.Time) int {
	return (today.Year()-date.Year())*12 + int(today.Month()) - int(date.Month())
}

// trailingMonthLabel returns the label of the month idx slots into the
// 6-month window ending at today's month (idx 5 == current month).
func trailingMonthLabel(today time.Time, idx int) string {
	m := (int(today.Month()) - 1 - 5 + idx) % 12
	if m < 0 {
		m += 12
	}
	return monthLabels[m]
}

// RevenueByMonth buckets invoice totals into the 6 calendar months ending at
// today's month, oldest first. Invoices outside the window are excluded, not
// clamped into the edge buckets.
func RevenueByMonth(invoices []models.Invoice, today time.Time) []RevenuePoint {
	var buckets [6]float64
	for _, inv := range invoices {
		if d := monthDiff(today, inv.Date); d >= 0 && d < 6 {
			buckets[5-d] += inv.Total
		}
	}
	out := make([]RevenuePoint, 6)
	for i := range out {
		out[i] = RevenuePoint{Month: trailingMonthLabel(today, i), Revenue: buckets[i]}
	}
	return out
}

// StatusHistogram counts invoices per status, in first-seen order. Statuses
// with zero occurrences do not appear.
func StatusHistogram(invoices []models.Invoice) []StatusCount {
	counts := map[string]int{}
	var order []string
	for _, inv := range invoices {
		if _, seen := counts[inv.Status]; !seen {
			order = append(order, inv.Status)
		}
		counts[inv.Status]++
	}
	out := make([]StatusCount, len(order))
	for i, s := range order {
		out[i] = StatusCount{Status: s, Count: counts[s]}
	}
	return out
}

// TopCustomersByRevenue groups invoices by customer display name, sums the
// totals, and returns the top groups by revenue. Ties keep first-seen order.
func TopCustomersByRevenue(invoices []models.Invoice, limit int) []CustomerRevenue {
	revenue := map[string]float64{}
	var order []string
	for _, inv := range invoices {
		name := inv.Customer.Name
		if _, seen := revenue[name]; !seen {
			order = append(order, name)
		}
		revenue[name] += inv.Total
	}
	out := make([]CustomerRevenue, len(order))
	for i, name := range order {
		out[i] = CustomerRevenue{Name: name, Total: revenue[name]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MonthlyComparison counts invoices and quotations per month over the same
// trailing-6-month window as RevenueByMonth.
func MonthlyComparison(invoices []models.Invoice, quotations []models.Quotation, today time.Time) []ComparisonPoint {
	var invCounts, quoCounts [6]int
	for _, inv := range invoices {
		if d := monthDiff(today, inv.Date); d >= 0 && d < 6 {
			invCounts[5-d]++
		}
	}
	for _, q := range quotations {
		if d := monthDiff(today, q.Date); d >= 0 && d < 6 {
			quoCounts[5-d]++
		}
	}
	out := make([]ComparisonPoint, 6)
	for i := range out {
		out[i] = ComparisonPoint{Month: trailingMonthLabel(today, i), Invoices: invCounts[i], Quotations: quoCounts[i]}
	}
	return out
}

// AgingBuckets distributes the outstanding balance of unpaid invoices over
// the fixed buckets [Current, 1-30, 31-60, 61-90, 90+] by days past due.
// Invoices with balance <= 0 (paid or overpaid) do not appear at all. All
// five buckets are always present, empty ones report 0.
func AgingBuckets(invoices []models.Invoice, today time.Time) []AgingBucket {
	var amounts [5]float64
	for _, inv := range invoices {
		if inv.Balance <= 0 {
			continue
		}
		days := int(math.Floor(today.Sub(inv.DueDate).Hours() / 24))
		switch {
		case days <= 0:
			amounts[0] += inv.Balance
		case days <= 30:
			amounts[1] += inv.Balance
		case days <= 60:
			amounts[2] += inv.Balance
		case days <= 90:
			amounts[3] += inv.Balance
		default:
			amounts[4] += inv.Balance
		}
	}
	out := make([]AgingBucket, 5)
	for i := range out {
		out[i] = AgingBucket{Range: agingRanges[i], Amount: amounts[i]}
	}
	return out
}
