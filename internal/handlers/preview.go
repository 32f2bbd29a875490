package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bizdesk/bizdesk/internal/finance"
	"github.com/bizdesk/bizdesk/internal/httpx"
)

// PreviewHandler recomputes a document draft while it is being edited. The
// form posts its raw field strings here on every change and renders the
// returned amounts and totals; nothing is persisted.
type PreviewHandler struct{}

func NewPreviewHandler() *PreviewHandler { return &PreviewHandler{} }

type previewItemReq struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
}

type previewReq struct {
	Items      []previewItemReq `json:"items"`
	TaxRate    string           `json:"tax_rate"`
	AmountPaid string           `json:"amount_paid"` // empty for quotations
}

type previewResp struct {
	Items  []finance.LineItem `json:"items"`
	Totals finance.Totals     `json:"totals"`
}

func computationDetails(err error) any {
	var cerr *finance.ComputationError
	if errors.As(err, &cerr) {
		return map[string]string{cerr.Field: cerr.Reason}
	}
	return nil
}

// Preview: POST /documents/preview
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	items := make([]finance.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := finance.ApplyItemEdit(finance.LineItem{}, finance.FieldDescription, it.Description)
		if err == nil {
			item, err = finance.ApplyItemEdit(item, finance.FieldQuantity, it.Quantity)
		}
		if err == nil {
			item, err = finance.ApplyItemEdit(item, finance.FieldPrice, it.Price)
		}
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", computationDetails(err))
			return
		}
		items = append(items, item)
	}
	taxRate, err := finance.ParseAmount("taxRate", req.TaxRate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", computationDetails(err))
		return
	}

	var totals finance.Totals
	if req.AmountPaid != "" {
		amountPaid, err := finance.ParseAmount("amountPaid", req.AmountPaid)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", computationDetails(err))
			return
		}
		totals, err = finance.InvoiceTotals(items, taxRate, amountPaid)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", computationDetails(err))
			return
		}
	} else {
		totals, err = finance.DocumentTotals(items, taxRate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", computationDetails(err))
			return
		}
	}
	httpx.JSON(w, http.StatusOK, previewResp{Items: items, Totals: totals})
}
