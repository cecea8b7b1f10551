package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/api/handler"
	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/roster"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
	"github.com/albapepper/scoracle-cricket/internal/scoring/scoringtest"
)

type nopRoster struct{}

func (nopRoster) Batches(context.Context) ([]roster.Batch, error) { return nil, nil }
func (nopRoster) UpdateProfile(_ context.Context, id int64, _ roster.Profile) (*roster.Player, error) {
	return &roster.Player{ID: id}, nil
}
func (nopRoster) ApprovePlayer(_ context.Context, id int64) (*roster.Player, error) {
	return &roster.Player{ID: id}, nil
}
func (nopRoster) AllowedPlayers(context.Context, int64) ([]roster.Player, error) { return nil, nil }

type nopInbox struct{}

func (nopInbox) Unread(context.Context, int64, int) ([]notifications.Notification, error) {
	return nil, nil
}
func (nopInbox) MarkRead(context.Context, int64, int64) error { return nil }

type okPinger struct{}

func (okPinger) HealthCheck(context.Context) error { return nil }

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *scoringtest.MemStore) {
	t.Helper()
	store := scoringtest.New()
	logger := slog.New(slog.DiscardHandler)
	h := handler.New(handler.Deps{
		Scoring: scoring.NewService(store, logger),
		Roster:  nopRoster{},
		Inbox:   nopInbox{},
		DB:      okPinger{},
		Cache:   cache.New(false),
		Config:  cfg,
		Logger:  logger,
	})
	return NewRouter(h, nil, cfg), store
}

func do(router http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:5555"
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterIdentity(t *testing.T) {
	router, store := newTestRouter(t, &config.Config{})
	coachID := int64(7)
	id := store.AddMatch(scoring.Match{
		TeamName:       "Team A",
		OpponentName:   "Team B",
		Status:         scoring.StatusOngoing,
		CurrentInnings: 1,
		ScorerCoachID:  &coachID,
	})
	path := "/api/v1/matches/" + strconv.FormatInt(id, 10)
	coach := map[string]string{HeaderActorRole: "coach", HeaderCoachID: "7"}

	tests := []struct {
		name   string
		method string
		path   string
		hdr    map[string]string
		want   int
	}{
		{"public read", http.MethodGet, path, nil, http.StatusOK},
		{"write without identity", http.MethodPost, path + "/manual-score", nil, http.StatusUnauthorized},
		{"coach without id", http.MethodPost, path + "/manual-score", map[string]string{HeaderActorRole: "coach"}, http.StatusUnauthorized},
		{"unknown role", http.MethodGet, path, map[string]string{HeaderActorRole: "umpire"}, http.StatusUnauthorized},
		{"bad player id", http.MethodGet, path, map[string]string{HeaderActorRole: "player", HeaderPlayerID: "x"}, http.StatusUnauthorized},
		{"assigned coach", http.MethodPost, path + "/manual-score", coach, http.StatusOK},
		{"other coach", http.MethodPost, path + "/manual-score", map[string]string{HeaderActorRole: "Coach", HeaderCoachID: "8"}, http.StatusForbidden},
		{"notifications need identity", http.MethodGet, "/api/v1/notifications", nil, http.StatusUnauthorized},
		{"availability needs identity", http.MethodPost, "/api/v1/availability/1/respond", nil, http.StatusUnauthorized},
		{"health", http.MethodGet, "/health", nil, http.StatusOK},
	}
	for _, tt := range tests {
		rec := do(router, tt.method, tt.path, "", tt.hdr)
		if rec.Code != tt.want {
			t.Errorf("%s: %s %s = %d, want %d (%s)", tt.name, tt.method, tt.path, rec.Code, tt.want, rec.Body)
		}
	}
}

func TestRateLimit(t *testing.T) {
	router, _ := newTestRouter(t, &config.Config{
		RateLimitEnabled:  true,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})

	// burst is max(2/2, 1) = 1
	if rec := do(router, http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	rec := do(router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
}
