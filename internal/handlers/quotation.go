package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/finance"
	"github.com/bizdesk/bizdesk/internal/httpx"
	"github.com/bizdesk/bizdesk/internal/listing"
	"github.com/bizdesk/bizdesk/internal/models"
)

type QuotationHandler struct {
	DB *gorm.DB
}

func NewQuotationHandler(db *gorm.DB) *QuotationHandler {
	return &QuotationHandler{DB: db}
}

type quotationReq struct {
	ID         uint      `json:"id"`
	Number     string    `json:"number"`
	Date       string    `json:"date"`
	ValidUntil string    `json:"valid_until"`
	CustomerID uint      `json:"customer_id"`
	TaxRate    float64   `json:"tax_rate"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	Items      []itemReq `json:"items"`
}

// List: GET /quotations?q=&sort=
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	var quotations []models.Quotation
	if err := h.DB.Preload("Items").Preload("Customer").Order("id").Find(&quotations).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotations", nil)
		return
	}
	sortKey := r.URL.Query().Get("sort")
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	quotations = listing.SortAndFilterQuotations(quotations, sortKey, q)
	httpx.JSON(w, http.StatusOK, map[string]any{"items": quotations, "total": len(quotations)})
}

func (h *QuotationHandler) decodeAndCompute(w http.ResponseWriter, r *http.Request) (*quotationReq, []finance.LineItem, finance.Totals, bool) {
	var req quotationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return nil, nil, finance.Totals{}, false
	}
	if req.CustomerID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customer_id": "required"})
		return nil, nil, finance.Totals{}, false
	}
	if req.Status == "" {
		req.Status = models.QuotationStatusDraft
	}
	if !validStatus(req.Status, models.QuotationStatusDraft, models.QuotationStatusSent, models.QuotationStatusAccepted, models.QuotationStatusDeclined, models.QuotationStatusExpired) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"status": "unknown"})
		return nil, nil, finance.Totals{}, false
	}
	if req.TaxRate < 0 || req.TaxRate > 1 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"tax_rate": "must be a fraction between 0 and 1"})
		return nil, nil, finance.Totals{}, false
	}
	items, err := buildLineItems(req.Items)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
		return nil, nil, finance.Totals{}, false
	}
	// Submitted totals are never trusted; everything derived is recomputed.
	totals, err := finance.DocumentTotals(items, req.TaxRate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": err.Error()})
		return nil, nil, finance.Totals{}, false
	}
	return &req, items, totals, true
}

// Create: POST /quotations
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	validUntil := date.AddDate(0, 1, 0)
	if req.ValidUntil != "" {
		d, err := parseDate(req.ValidUntil)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"valid_until": "invalid"})
			return
		}
		validUntil = d
	}
	number := req.Number
	if number == "" {
		var err error
		if number, err = nextNumber(h.DB, &models.Quotation{}, "Q", date); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quotation", nil)
			return
		}
	}
	quotation := models.Quotation{
		Number:     number,
		Date:       date,
		ValidUntil: validUntil,
		CustomerID: req.CustomerID,
		TaxRate:    req.TaxRate,
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		Status:     req.Status,
		Notes:      req.Notes,
		Items:      models.QuotationItemsFrom(items),
	}
	if err := h.DB.Create(&quotation).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quotation", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, quotation)
}

// Update: POST /quotations/update — items are replaced wholesale and totals
// recomputed, in one transaction.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, items, totals, ok := h.decodeAndCompute(w, r)
	if !ok {
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var quotation models.Quotation
	if err := h.DB.First(&quotation, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "quotation_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quotation", nil)
		return
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "invalid"})
			return
		}
		quotation.Date = d
	}
	if req.ValidUntil != "" {
		d, err := parseDate(req.ValidUntil)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"valid_until": "invalid"})
			return
		}
		quotation.ValidUntil = d
	}
	if req.Number != "" {
		quotation.Number = req.Number
	}
	quotation.CustomerID = req.CustomerID
	quotation.TaxRate = req.TaxRate
	quotation.Subtotal = totals.Subtotal
	quotation.TaxAmount = totals.TaxAmount
	quotation.Total = totals.Total
	quotation.Status = req.Status
	quotation.Notes = req.Notes

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		quotation.Items = models.QuotationItemsFrom(items)
		for i := range quotation.Items {
			quotation.Items[i].QuotationID = quotation.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&quotation).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quotation", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

// Delete: POST /quotations/delete
func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req quotationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", req.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Quotation{}, req.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "quotation_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_quotation", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type convertReq struct {
	ID      uint   `json:"id"`
	DueDate string `json:"due_date"`
}

// Convert: POST /quotations/convert — creates a Pending invoice from an
// Accepted quotation, carrying the items over and linking both ways.
func (h *QuotationHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var quotation models.Quotation
	if err := h.DB.Preload("Items").First(&quotation, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "quotation_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert_quotation", nil)
		return
	}
	if quotation.Status != models.QuotationStatusAccepted {
		httpx.JSONError(w, http.StatusConflict, "quotation_not_accepted", nil)
		return
	}
	if quotation.ConvertedInvoiceID != nil {
		httpx.JSONError(w, http.StatusConflict, "quotation_already_converted", nil)
		return
	}

	date := time.Now()
	dueDate := date.AddDate(0, 0, 30)
	if req.DueDate != "" {
		d, err := parseDate(req.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"due_date": "invalid"})
			return
		}
		dueDate = d
	}

	items := quotation.LineItems()
	totals, err := finance.InvoiceTotals(items, quotation.TaxRate, 0)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert_quotation", nil)
		return
	}
	var invoice models.Invoice
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextNumber(tx, &models.Invoice{}, "INV", date)
		if err != nil {
			return err
		}
		invoice = models.Invoice{
			Number:      number,
			Date:        date,
			DueDate:     dueDate,
			CustomerID:  quotation.CustomerID,
			QuotationID: &quotation.ID,
			TaxRate:     quotation.TaxRate,
			Subtotal:    totals.Subtotal,
			TaxAmount:   totals.TaxAmount,
			Total:       totals.Total,
			AmountPaid:  0,
			Balance:     totals.Balance,
			Status:      models.InvoiceStatusPending,
			Notes:       quotation.Notes,
			Items:       models.InvoiceItemsFrom(items),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&quotation).Update("converted_invoice_id", invoice.ID).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_convert_quotation", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}
