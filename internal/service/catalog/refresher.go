package catalog

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/eracalc/internal/pkg/logger"
)

// Refresher reloads a registry on a fixed interval until its context ends.
type Refresher struct {
	registry   *Registry
	interval   time.Duration
	maxRetries uint64
}

func NewRefresher(registry *Registry, interval time.Duration, maxRetries uint64) *Refresher {
	return &Refresher{registry: registry, interval: interval, maxRetries: maxRetries}
}

// Run blocks. A failed reload is retried with exponential backoff and then
// left for the next tick; the old snapshot keeps serving meanwhile.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.reload(ctx); err != nil {
				logger.Warnf(ctx, "catalog refresh failed: %s", err.Error())
			}
		}
	}
}

func (r *Refresher) reload(ctx context.Context) error {
	return backoff.Retry(
		func() error {
			_, err := r.registry.Reload(ctx)
			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxRetries),
			ctx,
		),
	)
}
