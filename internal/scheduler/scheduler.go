// Package scheduler runs the periodic document status sweep.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bizdesk/bizdesk/internal/models"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	db       *gorm.DB
	cronSpec string
	logger   *zap.Logger
}

func New(db *gorm.DB, cronSpec string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{cron: cron.New(), db: db, cronSpec: cronSpec, logger: logger}
}

// Start registers the sweep job and starts the cron loop.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.cronSpec, s.runSweep); err != nil {
		s.logger.Error("failed to schedule status sweep", zap.String("spec", s.cronSpec), zap.Error(err))
		return
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.cronSpec))
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	overdue, expired, err := SweepStatuses(s.db, time.Now())
	if err != nil {
		s.logger.Error("status sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("status sweep completed",
		zap.Int64("invoices_overdue", overdue),
		zap.Int64("quotations_expired", expired))
}

// SweepStatuses flips Pending invoices past their due date to Overdue and
// Sent quotations past their validity date to Expired. Returns the number of
// rows touched in each pass.
func SweepStatuses(db *gorm.DB, now time.Time) (overdue, expired int64, err error) {
	res := db.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusPending, now).
		Update("status", models.InvoiceStatusOverdue)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	overdue = res.RowsAffected

	res = db.Model(&models.Quotation{}).
		Where("status = ? AND valid_until < ?", models.QuotationStatusSent, now).
		Update("status", models.QuotationStatusExpired)
	if res.Error != nil {
		return overdue, 0, res.Error
	}
	return overdue, res.RowsAffected, nil
}
