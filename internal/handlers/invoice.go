package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/finance"
	"github.com/bizdesk/bizdesk/internal/httpx"
	"github.com/bizdesk/bizdesk/internal/listing"
	"github.com/bizdesk/bizdesk/internal/models"
	"github.com/bizdesk/bizdesk/internal/pdf"
)

type InvoiceHandler struct {
	DB *gorm.DB
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{DB: db}
}

type invoiceReq struct {
	ID         uint      `json:"id"`
	Number     string    `json:"number"`
	Date       string    `json:"date"`
	DueDate    string    `json:"due_date"`
	CustomerID uint      `json:"customer_id"`
	TaxRate    float64   `json:"tax_rate"`
	AmountPaid float64   `json:"amount_paid"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	Items      []itemReq `json:"items"`
}

// List: GET /invoices?q=&sort=
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice
	if err := h.DB.Preload("Items").Preload("Customer").Order("id").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	sortKey := r.URL.Query().Get("sort")
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	invoices = listing.SortAndFilterInvoices(invoices, sortKey, q)
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

func (h *InvoiceHandler) decodeAndCompute(w http.ResponseWriter, r *http.Request) (*invoiceReq, []finance.LineItem, finance.Totals, bool) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return nil, nil, finance.Totals{}, false
	}
	if req.CustomerID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "required"})
		return nil, nil, finance.Totals{}, false
	}
	if req.Status == "" {
		req.Status = models.InvoiceStatusPending
	}
	if !validStatus(req.Status, models.InvoiceStatusDraft, models.InvoiceStatusPending, models.InvoiceStatusPaid, models.InvoiceStatusOverdue, models.InvoiceStatusCancelled) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"status": "unknown"})
		return nil, nil, finance.Totals{}, false
	}
	if req.TaxRate < 0 || req.TaxRate > 1 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"tax_rate": "must be a fraction between 0 and 1"})
		return nil, nil, finance.Totals{}, false
	}
	if req.AmountPaid < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"amount_paid": "must not be negative"})
		return nil, nil, finance.Totals{}, false
	}
	items, err := buildLineItems(req.Items)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
		return nil, nil, finance.Totals{}, false
	}
	totals, err := finance.InvoiceTotals(items, req.TaxRate, req.AmountPaid)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
		return nil, nil, finance.Totals{}, false
	}
	return &req, items, totals, true
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, items, totals, ok := h.decodeAndCompute(w, r)
	if !ok {
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, req.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_customer", nil)
		return
	}
	date := time.Now()
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "invalid"})
			return
		}
		date = d
	}
	dueDate := date.AddDate(0, 0, 30)
	if req.DueDate != "" {
		d, err := parseDate(req.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"due_date": "invalid"})
			return
		}
		dueDate = d
	}
	number := req.Number
	if number == "" {
		var err error
		if number, err = nextNumber(h.DB, &models.Invoice{}, "INV", date); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
			return
		}
	}
	invoice := models.Invoice{
		Number:     number,
		Date:       date,
		DueDate:    dueDate,
		CustomerID: req.CustomerID,
		TaxRate:    req.TaxRate,
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		AmountPaid: req.AmountPaid,
		Balance:    totals.Balance,
		Status:     req.Status,
		Notes:      req.Notes,
		Items:      models.InvoiceItemsFrom(items),
	}
	if err := h.DB.Create(&invoice).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}

// Update: POST /invoices/update
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, items, totals, ok := h.decodeAndCompute(w, r)
	if !ok {
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "invalid"})
			return
		}
		invoice.Date = d
	}
	if req.DueDate != "" {
		d, err := parseDate(req.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"due_date": "invalid"})
			return
		}
		invoice.DueDate = d
	}
	if req.Number != "" {
		invoice.Number = req.Number
	}
	invoice.CustomerID = req.CustomerID
	invoice.TaxRate = req.TaxRate
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total
	invoice.AmountPaid = req.AmountPaid
	invoice.Balance = totals.Balance
	invoice.Status = req.Status
	invoice.Notes = req.Notes

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		invoice.Items = models.InvoiceItemsFrom(items)
		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&invoice).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Delete: POST /invoices/delete
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quotation{}).Where("converted_invoice_id = ?", req.ID).Update("converted_invoice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", req.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Invoice{}, req.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type paymentReq struct {
	ID     uint   `json:"id"`
	Amount string `json:"amount"`
}

// Pay: POST /invoices/pay — records a payment. The amount arrives as the raw
// form string and goes through the strict numeric parser; malformed input is
// rejected, never coerced to zero. Overpayment is allowed and shows up as a
// negative balance.
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req paymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	amount, err := finance.ParseAmount("amount", req.Amount)
	if err != nil {
		var cerr *finance.ComputationError
		details := map[string]string{"amount": "invalid"}
		if errors.As(err, &cerr) {
			details["amount"] = cerr.Reason
		}
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", details)
		return
	}
	if amount <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"amount": "must be positive"})
		return
	}
	var invoice models.Invoice
	if err := h.DB.Preload("Items").First(&invoice, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		httpx.JSONError(w, http.StatusConflict, "invoice_cancelled", nil)
		return
	}
	totals, err := finance.InvoiceTotals(invoice.LineItems(), invoice.TaxRate, invoice.AmountPaid+amount)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	invoice.AmountPaid += amount
	invoice.Balance = totals.Balance
	if invoice.Balance <= 0 {
		invoice.Status = models.InvoiceStatusPaid
	}
	if err := h.DB.Save(&invoice).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_payment", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// PDF: GET /invoices/pdf?id=
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var invoice models.Invoice
	if err := h.DB.Preload("Items").Preload("Customer").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+invoice.Number+`.pdf"`)
	if err := pdf.RenderInvoice(w, invoice); err != nil {
		// headers already sent, nothing better to do than log upstream
		_ = err
	}
}
