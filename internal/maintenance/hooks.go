package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/db"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Views lists the materialized views derived from the career ledger.
var Views = []string{
	db.LeaderboardView,
}

// RefreshMaterializedViews refreshes the ledger views. Uses CONCURRENTLY so
// leaderboard reads are not blocked during refresh.
func RefreshMaterializedViews(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	for _, v := range Views {
		start := time.Now()
		_, err := pool.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				"view", v, "duration", dur, "error", err)
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", "view", v, "duration", dur)
	}
	return nil
}

// Refresher serialises view refreshes. Requests made while a refresh is
// pending collapse into one. It implements scoring.Publisher so approvals
// request a refresh.
type Refresher struct {
	trigger chan struct{}
	refresh func(ctx context.Context) error
	after   []func()
	logger  *slog.Logger
}

// NewRefresher creates a Refresher for the views on pool.
func NewRefresher(pool *pgxpool.Pool, logger *slog.Logger) *Refresher {
	return newRefresher(func(ctx context.Context) error {
		return RefreshMaterializedViews(ctx, pool, logger)
	}, logger)
}

func newRefresher(refresh func(ctx context.Context) error, logger *slog.Logger) *Refresher {
	return &Refresher{
		trigger: make(chan struct{}, 1),
		refresh: refresh,
		logger:  logger,
	}
}

// OnRefresh registers fn to run after every successful refresh. Register
// hooks before calling Run.
func (r *Refresher) OnRefresh(fn func()) *Refresher {
	r.after = append(r.after, fn)
	return r
}

// Request asks for a refresh without blocking.
func (r *Refresher) Request() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

func (r *Refresher) Publish(_ context.Context, e scoring.Event) {
	if e.Type == scoring.EventMatchApproved {
		r.Request()
	}
}

// Run performs requested refreshes until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	for {
		select {
		case <-r.trigger:
			if err := r.refresh(ctx); err != nil {
				r.logger.Warn("View refresh failed", "error", err)
				continue
			}
			for _, fn := range r.after {
				fn()
			}
		case <-ctx.Done():
			return
		}
	}
}
