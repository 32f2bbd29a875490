package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/httpx"
	"github.com/bizdesk/bizdesk/internal/listing"
	"github.com/bizdesk/bizdesk/internal/models"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{DB: db}
}

// List: GET /customers?q=&sort= — ordering and search run in memory through
// the listing engine, the same way the list pages sorted client-side.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := h.DB.Order("id").Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	sortKey := r.URL.Query().Get("sort")
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	customers = listing.SortAndFilterCustomers(customers, sortKey, q)
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": len(customers)})
}

type customerReq struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	c := models.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /customers/update
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
		return
	}
	var c models.Customer
	if err := h.DB.First(&c, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_customer", nil)
		return
	}
	c.Name, c.Email, c.Phone, c.Address = req.Name, req.Email, req.Phone, req.Address
	if err := h.DB.Save(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_customer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /customers/delete — refused while documents still reference
// the customer.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req customerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	var refs int64
	h.DB.Model(&models.Invoice{}).Where("customer_id = ?", req.ID).Count(&refs)
	if refs == 0 {
		h.DB.Model(&models.Quotation{}).Where("customer_id = ?", req.ID).Count(&refs)
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "customer_in_use", nil)
		return
	}
	res := h.DB.Delete(&models.Customer{}, req.ID)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_customer", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
