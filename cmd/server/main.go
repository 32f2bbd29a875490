package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bizdesk/bizdesk/internal/cache"
	"github.com/bizdesk/bizdesk/internal/config"
	"github.com/bizdesk/bizdesk/internal/db"
	"github.com/bizdesk/bizdesk/internal/scheduler"
	"github.com/bizdesk/bizdesk/internal/server"
	"github.com/bizdesk/bizdesk/pkg/logger"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Must(logger.New(cfg.Env))
	defer func() { _ = log.Sync() }()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("database ready", zap.String("dsn", db.MaskDSN(cfg.DatabaseDSN)))
	if *migrateOnlyFlag {
		log.Info("migrations completed; exiting as requested")
		return
	}

	var dashCache cache.DashboardCache = cache.NoopDashboardCache{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisDashboardCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, dashboard cache disabled", zap.Error(err))
		} else {
			dashCache = rc
			defer func() { _ = rc.Close() }()
		}
		cancel()
	}

	sched := scheduler.New(dbConn, cfg.SweepCron, logger.Named(log, "scheduler"))
	sched.Start()
	defer sched.Stop()

	handler := server.New(dbConn, dashCache, cfg, logger.Named(log, "http"))
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
