// Command admin runs club maintenance tasks against the scoring database.
//
// Usage:
//
//	scoracle-admin approve-pending --coach-id 7 --max 20 --workers 4
//	scoracle-admin refresh-views
//	scoracle-admin seed-batches
//	scoracle-admin purge-notifications --days 30
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-cricket/internal/batch"
	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/db"
	"github.com/albapepper/scoracle-cricket/internal/listener"
	"github.com/albapepper/scoracle-cricket/internal/maintenance"
	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/roster"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
	"github.com/albapepper/scoracle-cricket/internal/store"
	"github.com/albapepper/scoracle-cricket/internal/streams"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "scoracle-admin",
		Short: "Scoracle Cricket maintenance CLI",
	}

	root.AddCommand(approvePendingCmd())
	root.AddCommand(refreshViewsCmd())
	root.AddCommand(seedBatchesCmd())
	root.AddCommand(purgeNotificationsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// approve-pending command
// --------------------------------------------------------------------------

func approvePendingCmd() *cobra.Command {
	var (
		coachID     int64
		maxMatches  int
		workers     int
		skipRefresh bool
	)
	cmd := &cobra.Command{
		Use:   "approve-pending",
		Short: "Approve every match awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if coachID <= 0 {
				return fmt.Errorf("--coach-id is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				scoreStore := store.New(pool.Pool)
				inbox := notifications.NewStore(pool.Pool)

				publishers := scoring.Publishers{
					approvalNotifier{src: scoreStore, w: inbox},
					listener.NewNotifier(pool, "admin-"+uuid.NewString(), logger),
				}
				if cfg.RedisURL != "" {
					opts, err := redis.ParseURL(cfg.RedisURL)
					if err != nil {
						return fmt.Errorf("parse REDIS_URL: %w", err)
					}
					rdb := redis.NewClient(opts)
					defer rdb.Close()
					publishers = append(publishers, streams.New(rdb, cfg.EventsStream, streams.DefaultMaxLen, logger))
				}
				svc := scoring.NewService(scoreStore, logger, scoring.WithPublisher(publishers))

				coach := scoring.Actor{Role: scoring.RoleCoach, CoachID: &coachID}
				result := batch.ApprovePending(ctx, scoreStore, svc, coach, maxMatches, workers, logger)
				logger.Info("Approve pending finished", "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("approval error", "error", e)
				}

				if result.MatchesApproved > 0 && !skipRefresh {
					if err := maintenance.RefreshMaterializedViews(ctx, pool.Pool, logger); err != nil {
						return err
					}
				}
				if result.MatchesFailed > 0 {
					return fmt.Errorf("%d matches failed", result.MatchesFailed)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&coachID, "coach-id", 0, "Coach approving the matches")
	cmd.Flags().IntVar(&maxMatches, "max", batch.DefaultMaxMatches, "Maximum matches to approve")
	cmd.Flags().IntVar(&workers, "workers", batch.DefaultWorkers, "Concurrent worker count")
	cmd.Flags().BoolVar(&skipRefresh, "skip-refresh", false, "Skip leaderboard refresh after approving")
	return cmd
}

// approvalNotifier writes approval notifications inline. The CLI exits as
// soon as the run finishes, so there is no queue to drain.
type approvalNotifier struct {
	src notifications.Source
	w   notifications.Writer
}

func (n approvalNotifier) Publish(ctx context.Context, e scoring.Event) {
	if e.Type != scoring.EventMatchApproved || e.Approval == nil {
		return
	}
	if err := notifications.Run(ctx, n.src, n.w, *e.Approval, logger); err != nil {
		logger.Warn("Approval notifications failed", "match_id", e.MatchID, "error", err)
	}
}

// --------------------------------------------------------------------------
// refresh-views command
// --------------------------------------------------------------------------

func refreshViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-views",
		Short: "Refresh the leaderboard materialized views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				return maintenance.RefreshMaterializedViews(ctx, pool.Pool, logger)
			})
		},
	}
}

// --------------------------------------------------------------------------
// seed-batches command
// --------------------------------------------------------------------------

func seedBatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-batches",
		Short: "Upsert the default age-group batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				n, err := roster.NewRepo(pool.Pool).SeedBatches(ctx, roster.DefaultBatches)
				if err != nil {
					return err
				}
				logger.Info("Batches seeded", "count", n)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// purge-notifications command
// --------------------------------------------------------------------------

func purgeNotificationsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge-notifications",
		Short: "Delete read notifications older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				before := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
				n, err := notifications.NewStore(pool.Pool).PurgeRead(ctx, before)
				if err != nil {
					return err
				}
				logger.Info("Notifications purged", "deleted", n, "before", before.Format(time.DateOnly))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", int(notifications.Retention/(24*time.Hour)), "Keep read notifications this many days")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
