// Package handler provides HTTP handlers for all API endpoints.
// Scoring operations go through the scoring service; roster and inbox reads
// go to their repositories. Read-heavy views are served from the cache with
// ETags.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/availability"
	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/roster"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

const maxBodyBytes = 1 << 20

// Roster is the player repository used by the roster endpoints.
type Roster interface {
	Batches(ctx context.Context) ([]roster.Batch, error)
	UpdateProfile(ctx context.Context, playerID int64, p roster.Profile) (*roster.Player, error)
	ApprovePlayer(ctx context.Context, playerID int64) (*roster.Player, error)
	AllowedPlayers(ctx context.Context, matchID int64) ([]roster.Player, error)
}

// Inbox serves a player's notifications.
type Inbox interface {
	Unread(ctx context.Context, playerID int64, limit int) ([]notifications.Notification, error)
	MarkRead(ctx context.Context, playerID, id int64) error
}

// Polls runs pre-match availability polls.
type Polls interface {
	CreatePoll(ctx context.Context, a scoring.Actor, in availability.NewPoll) (*availability.Poll, error)
	Respond(ctx context.Context, pollID int64, a scoring.Actor, status availability.Status) (*availability.Response, error)
	Summary(ctx context.Context, pollID int64, a scoring.Actor) (*availability.Summary, error)
	Finalize(ctx context.Context, pollID int64, a scoring.Actor, f availability.Finalize) (*availability.Summary, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the handler's collaborators.
type Deps struct {
	Scoring *scoring.Service
	Roster  Roster
	Inbox   Inbox
	Polls   Polls
	DB      Pinger
	Cache   *cache.Cache
	Config  *config.Config
	Logger  *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc    *scoring.Service
	roster Roster
	inbox  Inbox
	polls  Polls
	db     Pinger
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	return &Handler{
		svc:    d.Scoring,
		roster: d.Roster,
		inbox:  d.Inbox,
		polls:  d.Polls,
		db:     d.DB,
		cache:  d.Cache,
		cfg:    d.Config,
		logger: d.Logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Cricket API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"features": []string{
			"manual_scoring",
			"live_ball_ledger",
			"match_approval",
			"career_ledger",
			"availability_polls",
			"live_feed",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// pathID parses a positive integer URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// actor returns the request's identity. Routes that call it sit behind
// RequireActor, so the zero Actor only appears in misrouted requests and is
// rejected by every permission check.
func actor(r *http.Request) scoring.Actor {
	a, _ := scoring.ActorFrom(r.Context())
	return a
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large")
			return nil, false
		}
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Could not read request body")
		return nil, false
	}
	return body, true
}

// decodeJSON reads the body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, ok := readBody(w, r)
	if !ok {
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION", "Invalid request", err.Error())
		return false
	}
	return true
}

// fail writes err, logging anything that maps to a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if respond.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error("Request failed", "op", op, "path", r.URL.Path, "error", err)
	}
	respond.WriteServiceError(w, err)
}

// serveCached serves key from the cache, or builds, caches and serves it.
// build returns the value and the TTL to cache it for.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key, op string, build func() (any, time.Duration, error)) {
	ifNoneMatch := r.Header.Get("If-None-Match")

	if data, etag, remaining, ok := h.cache.Lookup(key); ok {
		if cache.CheckETagMatch(ifNoneMatch, etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, remaining, true)
		return
	}

	v, ttl, err := build()
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(ifNoneMatch, etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
