package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/cache"
	"github.com/bizdesk/bizdesk/internal/dashboard"
	"github.com/bizdesk/bizdesk/internal/httpx"
	"github.com/bizdesk/bizdesk/internal/models"
)

const dashboardCacheKey = "dashboard:snapshot"

type DashboardHandler struct {
	DB     *gorm.DB
	Cache  cache.DashboardCache
	TTL    time.Duration
	Logger *zap.Logger
}

func NewDashboardHandler(db *gorm.DB, c cache.DashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardHandler {
	if c == nil {
		c = cache.NoopDashboardCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{DB: db, Cache: c, TTL: ttl, Logger: logger}
}

// Get: GET /dashboard — one snapshot of all six view models. Cache failures
// only cost a recomputation, they are logged and otherwise ignored.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if snap, ok, err := h.Cache.Get(ctx, dashboardCacheKey); err != nil {
		h.Logger.Warn("dashboard cache read failed", zap.Error(err))
	} else if ok {
		httpx.JSON(w, http.StatusOK, snap)
		return
	}

	var invoices []models.Invoice
	if err := h.DB.Preload("Customer").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	var quotations []models.Quotation
	if err := h.DB.Find(&quotations).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	var customers []models.Customer
	if err := h.DB.Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}

	snap := dashboard.BuildSnapshot(invoices, quotations, customers, time.Now())
	if err := h.Cache.Set(ctx, dashboardCacheKey, &snap, h.TTL); err != nil {
		h.Logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	httpx.JSON(w, http.StatusOK, snap)
}
