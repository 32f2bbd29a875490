package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizdesk/bizdesk/internal/dashboard"
	"github.com/bizdesk/bizdesk/internal/models"
)

type fakeCache struct {
	snap *dashboard.Snapshot
	sets int
}

func (f *fakeCache) Get(_ context.Context, _ string) (*dashboard.Snapshot, bool, error) {
	return f.snap, f.snap != nil, nil
}

func (f *fakeCache) Set(_ context.Context, _ string, snap *dashboard.Snapshot, _ time.Duration) error {
	f.snap = snap
	f.sets++
	return nil
}

func TestDashboardGet(t *testing.T) {
	db := setupTestDB(t)
	acme := seedCustomer(t, db, "Acme")
	tech := seedCustomer(t, db, "Tech")
	seedInvoice(t, db, acme.ID, "INV-1", 500, 500, models.InvoiceStatusPaid)
	seedInvoice(t, db, tech.ID, "INV-2", 1500, 0, models.InvoiceStatusPending)
	seedInvoice(t, db, acme.ID, "INV-3", 700, 0, models.InvoiceStatusPending)

	fc := &fakeCache{}
	h := NewDashboardHandler(db, fc, time.Minute, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var snap dashboard.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Stats.TotalInvoices != 3 || snap.Stats.TotalCustomers != 2 {
		t.Fatalf("stats wrong: %+v", snap.Stats)
	}
	if snap.Stats.TotalRevenue != 2700 || snap.Stats.OutstandingBalance != 2200 {
		t.Fatalf("sums wrong: %+v", snap.Stats)
	}
	if len(snap.TopCustomers) != 2 || snap.TopCustomers[0].Name != "Tech" {
		t.Fatalf("top customers wrong: %+v", snap.TopCustomers)
	}
	if len(snap.Revenue) != 6 || len(snap.Aging) != 5 {
		t.Fatalf("fixed-size series wrong: revenue=%d aging=%d", len(snap.Revenue), len(snap.Aging))
	}
	if fc.sets != 1 {
		t.Fatalf("snapshot should have been cached once, sets=%d", fc.sets)
	}

	// second call served from cache, no new Set
	w = httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if fc.sets != 1 {
		t.Fatalf("cache hit should not recompute, sets=%d", fc.sets)
	}
}

func TestDashboardEmptyData(t *testing.T) {
	db := setupTestDB(t)
	h := NewDashboardHandler(db, nil, time.Minute, nil)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var snap dashboard.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Stats.AverageInvoiceValue != 0 {
		t.Fatalf("empty data must not divide by zero: %+v", snap.Stats)
	}
	if len(snap.Aging) != 5 {
		t.Fatalf("aging schema must stay fixed: %+v", snap.Aging)
	}
}
