// Package maintenance runs periodic background tasks as Go tickers:
// purging read notifications and refreshing the leaderboard views.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/notifications"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CleanupInterval time.Duration // Read notifications past retention
	RefreshInterval time.Duration // Leaderboard views
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CleanupInterval: 30 * time.Minute,
		RefreshInterval: 1 * time.Hour,
	}
}

// Purger deletes read notifications older than a cutoff.
type Purger interface {
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

// Start launches all configured maintenance tickers and the refresher.
// Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, purger Purger, refresher *Refresher, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"cleanup", cfg.CleanupInterval,
		"refresh", cfg.RefreshInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	go refresher.Run(ctx)

	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, purger, time.Now(), logger) })
	}

	// Periodic refresh catches approvals whose trigger was coalesced or
	// made while the service was down.
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, refresher.Request)
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// cleanup removes read notifications older than the retention window.
func cleanup(ctx context.Context, purger Purger, now time.Time, logger *slog.Logger) {
	n, err := purger.PurgeRead(ctx, now.Add(-notifications.Retention))
	if err != nil {
		logger.Warn("Cleanup: failed to purge read notifications", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Cleanup: purged read notifications", "count", n)
	}
}
