// Package pdf renders invoices as printable PDF documents.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/bizdesk/bizdesk/internal/models"
)

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

// RenderInvoice writes an A4 invoice document to w. The invoice is expected
// with Customer and Items preloaded.
func RenderInvoice(w io.Writer, inv models.Invoice) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.Cell(120, 10, "INVOICE "+inv.Number)
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(60, 10, "Status: "+inv.Status, "", 1, "R", false, 0, "")
	doc.Cell(120, 6, "Date: "+inv.Date.Format("2006-01-02"))
	doc.CellFormat(60, 6, "Due: "+inv.DueDate.Format("2006-01-02"), "", 1, "R", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(0, 6, "Bill To", "", 1, "", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 5, inv.Customer.Name, "", 1, "", false, 0, "")
	if inv.Customer.Address != "" {
		doc.CellFormat(0, 5, inv.Customer.Address, "", 1, "", false, 0, "")
	}
	if inv.Customer.Email != "" {
		doc.CellFormat(0, 5, inv.Customer.Email, "", 1, "", false, 0, "")
	}
	doc.Ln(6)

	// Items table
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(90, 7, "Description", "1", 0, "", true, 0, "")
	doc.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, it := range inv.Items {
		doc.CellFormat(90, 7, it.Description, "1", 0, "", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%g", it.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(it.Price), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(it.Amount), "1", 1, "R", false, 0, "")
	}

	// Totals block
	doc.Ln(3)
	rows := []struct {
		label string
		value string
	}{
		{"Subtotal", money(inv.Subtotal)},
		{fmt.Sprintf("Tax (%.0f%%)", inv.TaxRate*100), money(inv.TaxAmount)},
		{"Total", money(inv.Total)},
		{"Amount Paid", money(inv.AmountPaid)},
		{"Balance Due", money(inv.Balance)},
	}
	for _, row := range rows {
		doc.CellFormat(115, 6, "", "", 0, "", false, 0, "")
		doc.CellFormat(35, 6, row.label, "", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, row.value, "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		doc.Ln(6)
		doc.SetFont("Arial", "I", 9)
		doc.MultiCell(0, 5, "Notes: "+inv.Notes, "", "", false)
	}

	return doc.Output(w)
}
