package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/cache"
	"github.com/bizdesk/bizdesk/internal/config"
	"github.com/bizdesk/bizdesk/internal/handlers"
	"github.com/bizdesk/bizdesk/internal/httpx"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, c cache.DashboardCache, cfg config.Config, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	listCreate := func(list, create http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				list(w, r)
			case http.MethodPost:
				create(w, r)
			default:
				w.Header().Set("Allow", "GET,POST")
				httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			}
		}
	}
	postOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.Header().Set("Allow", "POST")
				httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
				return
			}
			h(w, r)
		}
	}

	// Customer endpoints. List/Create via /customers, Update/Delete via
	// action paths for simplicity.
	ch := handlers.NewCustomerHandler(db)
	mux.HandleFunc("/customers", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/customers/update", postOnly(ch.Update))
	mux.HandleFunc("/customers/delete", postOnly(ch.Delete))

	// Quotation endpoints
	qh := handlers.NewQuotationHandler(db)
	mux.HandleFunc("/quotations", listCreate(qh.List, qh.Create))
	mux.HandleFunc("/quotations/update", postOnly(qh.Update))
	mux.HandleFunc("/quotations/delete", postOnly(qh.Delete))
	mux.HandleFunc("/quotations/convert", postOnly(qh.Convert))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(db)
	mux.HandleFunc("/invoices", listCreate(ih.List, ih.Create))
	mux.HandleFunc("/invoices/update", postOnly(ih.Update))
	mux.HandleFunc("/invoices/delete", postOnly(ih.Delete))
	mux.HandleFunc("/invoices/pay", postOnly(ih.Pay))
	mux.HandleFunc("/invoices/pdf", ih.PDF)

	// Live form recomputation
	ph := handlers.NewPreviewHandler()
	mux.HandleFunc("/documents/preview", postOnly(ph.Preview))

	// Dashboard
	dh := handlers.NewDashboardHandler(db, c, cfg.DashboardCacheTTL, logger)
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		dh.Get(w, r)
	})

	return withRecover(withLogging(mux, logger), logger)
}

func withLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func withRecover(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
