package cache

import (
	"context"
	"time"

	"github.com/bizdesk/bizdesk/internal/dashboard"
)

// DashboardCache stores rendered dashboard snapshots between data refreshes.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*dashboard.Snapshot, bool, error)
	Set(ctx context.Context, key string, snap *dashboard.Snapshot, ttl time.Duration) error
}

// NoopDashboardCache is used when no Redis address is configured.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ string) (*dashboard.Snapshot, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *dashboard.Snapshot, _ time.Duration) error {
	return nil
}
