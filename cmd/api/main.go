// Command api is the Scoracle Cricket API server.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 REDIS_URL=redis://localhost:6379/0 scoracle-api

// @title Scoracle Cricket API
// @version 1.0.0
// @description Club cricket scoring API: manual scorecards, live ball ledger, coach approval, career stats and match reports.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/albapepper/scoracle-cricket/internal/api"
	"github.com/albapepper/scoracle-cricket/internal/api/handler"
	"github.com/albapepper/scoracle-cricket/internal/availability"
	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/db"
	"github.com/albapepper/scoracle-cricket/internal/listener"
	"github.com/albapepper/scoracle-cricket/internal/livefeed"
	"github.com/albapepper/scoracle-cricket/internal/maintenance"
	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/roster"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
	"github.com/albapepper/scoracle-cricket/internal/store"
	"github.com/albapepper/scoracle-cricket/internal/streams"

	_ "github.com/albapepper/scoracle-cricket/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	scoreStore := store.New(pool.Pool)
	inbox := notifications.NewStore(pool.Pool)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Committed-event consumers. Views local to this process also receive
	// events relayed from other processes over LISTEN/NOTIFY, so approvals
	// made by the admin CLI refresh the leaderboard here too.
	origin := "api-" + uuid.NewString()
	notifier := notifications.NewNotifier(scoreStore, inbox, logger)
	invalidator := cache.NewInvalidator(appCache)
	refresher := maintenance.NewRefresher(pool.Pool, logger).OnRefresh(invalidator.ViewsRefreshed)
	views := scoring.Publishers{invalidator, refresher}

	var hub *livefeed.Hub
	if cfg.LiveFeedEnabled {
		hub = livefeed.NewHub(logger)
		views = append(views, hub)
	}

	publishers := scoring.Publishers{
		views,
		notifier,
		listener.NewNotifier(pool, origin, logger),
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, events will retry per publish", "error", err)
		}
		publishers = append(publishers, streams.New(rdb, cfg.EventsStream, streams.DefaultMaxLen, logger))
		logger.Info("Match event stream enabled", "stream", cfg.EventsStream)
	} else {
		logger.Info("Match event stream disabled (no REDIS_URL)")
	}

	svc := scoring.NewService(scoreStore, logger,
		scoring.WithPublisher(publishers),
		scoring.WithReportTopN(cfg.ReportTopN),
	)

	// Background workers
	go listener.Start(ctx, cfg.DatabaseURL, origin, views, logger)
	go notifier.StartWorker(ctx)
	go maintenance.Start(ctx, inbox, refresher, maintenance.Config{
		CleanupInterval: cfg.CleanupInterval,
		RefreshInterval: cfg.ViewRefreshInterval,
	}, logger)

	var feed *livefeed.Handler
	if hub != nil {
		go hub.Run(ctx)
		feed = livefeed.NewHandler(ctx, hub, cfg.CORSAllowOrigins)
		logger.Info("Live feed enabled", "path", "/ws/matches/{matchID}")
	}

	// Create router
	h := handler.New(handler.Deps{
		Scoring: svc,
		Roster:  roster.NewRepo(pool.Pool),
		Inbox:   inbox,
		Polls:   availability.NewService(availability.NewRepo(pool.Pool), svc, inbox, logger),
		DB:      pool,
		Cache:   appCache,
		Config:  cfg,
		Logger:  logger,
	})
	router := api.NewRouter(h, feed, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Cricket API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
