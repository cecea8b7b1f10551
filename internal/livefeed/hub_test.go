package livefeed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func startFeed(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(slog.New(slog.DiscardHandler))
	go hub.Run(ctx)

	h := NewHandler(ctx, hub, nil)
	r := chi.NewRouter()
	r.Get("/ws/matches/{matchID}", h.Watch)
	r.Get("/ws/metrics", h.Metrics)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubDeliversOnlyWatchedMatch(t *testing.T) {
	hub, srv := startFeed(t)
	watching3 := dial(t, srv, "/ws/matches/3")
	watching4 := dial(t, srv, "/ws/matches/4")
	waitForClients(t, hub, 2)

	hub.Publish(context.Background(), scoring.Event{Type: scoring.EventBallAdded, MatchID: 4})
	hub.Publish(context.Background(), scoring.Event{Type: scoring.EventScoreSubmitted, MatchID: 3})

	watching3.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := watching3.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.MatchID != 3 || msg.Type != scoring.EventScoreSubmitted {
		t.Errorf("match 3 viewer got %+v, want score_submitted for match 3", msg)
	}

	watching4.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := watching4.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.MatchID != 4 || msg.Type != scoring.EventBallAdded {
		t.Errorf("match 4 viewer got %+v, want ball_added for match 4", msg)
	}
}

func TestHubUnregistersClosedViewer(t *testing.T) {
	hub, srv := startFeed(t)
	conn := dial(t, srv, "/ws/matches/9")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestWatchRejectsBadMatchID(t *testing.T) {
	_, srv := startFeed(t)
	resp, err := http.Get(srv.URL + "/ws/matches/nope")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPublishDropsWhenQueueFull(t *testing.T) {
	// Hub loop not running, so nothing drains the queue.
	hub := NewHub(slog.New(slog.DiscardHandler))
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Publish(context.Background(), scoring.Event{MatchID: 1})
	}
	if m := hub.Metrics(); m.QueueUsage != m.QueueCapacity {
		t.Errorf("queue usage = %d, want %d", m.QueueUsage, m.QueueCapacity)
	}
}

func TestRegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		hub.Register(&Client{ID: "late", Send: make(chan Message, 1)})
		hub.Unregister(&Client{ID: "late"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register blocked after hub stopped")
	}
}
