package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestCustomerCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)

	body := `{"name":"Acme Corporation","email":"contact@acmecorp.com","phone":"555-123-4567"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	// missing name rejected
	req = httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"email":"x@y.com"}`))
	w = httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}

	seedCustomer(t, db, "Beta LLC")

	listReq := httptest.NewRequest(http.MethodGet, "/customers?sort=nameAsc", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []struct {
			Name string `json:"Name"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 2 || list.Items[0].Name != "Acme Corporation" {
		t.Fatalf("unexpected list: %+v", list)
	}

	// search narrows
	qReq := httptest.NewRequest(http.MethodGet, "/customers?q=beta", nil)
	qW := httptest.NewRecorder()
	h.List(qW, qReq)
	if err := json.Unmarshal(qW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 || list.Items[0].Name != "Beta LLC" {
		t.Fatalf("search failed: %+v", list)
	}
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)
	c := seedCustomer(t, db, "Old Name")

	body := `{"id":` + strconv.Itoa(int(c.ID)) + `,"name":"New Name","email":"new@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/update", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// customer in use cannot be deleted
	seedInvoice(t, db, c.ID, "INV-1", 100, 0, "Pending")
	delBody := `{"id":` + strconv.Itoa(int(c.ID)) + `}`
	req = httptest.NewRequest(http.MethodPost, "/customers/delete", strings.NewReader(delBody))
	w = httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for referenced customer, got %d", w.Code)
	}

	free := seedCustomer(t, db, "Unreferenced")
	req = httptest.NewRequest(http.MethodPost, "/customers/delete", strings.NewReader(`{"id":`+strconv.Itoa(int(free.ID))+`}`))
	w = httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
