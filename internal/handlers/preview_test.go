package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bizdesk/bizdesk/internal/finance"
)

func TestPreviewQuotation(t *testing.T) {
	h := NewPreviewHandler()
	body := `{"tax_rate":"0.20","items":[
		{"description":"Website Design","quantity":"1","price":"1500"},
		{"description":"Frontend Development","quantity":"1","price":"1000"}]}`
	req := httptest.NewRequest(http.MethodPost, "/documents/preview", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Preview(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Items  []finance.LineItem `json:"items"`
		Totals finance.Totals     `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals.Subtotal != 2500 || resp.Totals.TaxAmount != 500 || resp.Totals.Total != 3000 {
		t.Fatalf("totals wrong: %+v", resp.Totals)
	}
	if len(resp.Items) != 2 || resp.Items[0].Amount != 1500 {
		t.Fatalf("items wrong: %+v", resp.Items)
	}
}

func TestPreviewInvoiceWithAmountPaid(t *testing.T) {
	h := NewPreviewHandler()
	body := `{"tax_rate":"0.20","amount_paid":"3000","items":[{"description":"App","quantity":"1","price":"5000"}]}`
	req := httptest.NewRequest(http.MethodPost, "/documents/preview", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Preview(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Totals finance.Totals `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals.Total != 6000 || resp.Totals.Balance != 3000 {
		t.Fatalf("totals wrong: %+v", resp.Totals)
	}
}

func TestPreviewRejectsMalformedNumbers(t *testing.T) {
	h := NewPreviewHandler()
	cases := []string{
		`{"tax_rate":"0.2","items":[{"quantity":"abc","price":"10"}]}`,
		`{"tax_rate":"0.2","items":[{"quantity":"1","price":"NaN"}]}`,
		`{"tax_rate":"","items":[{"quantity":"1","price":"10"}]}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/documents/preview", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Preview(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}
