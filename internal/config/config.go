package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	DatabaseDSN       string
	Env               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SweepCron         string
	DashboardCacheTTL time.Duration
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:bizdesk.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.SweepCron = getEnv("SWEEP_CRON", "30 0 * * *")
	cfg.DashboardCacheTTL = getEnvDuration("DASHBOARD_CACHE_TTL", 30*time.Second)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %s", key, v)
			return def
		}
		return d
	}
	return def
}
