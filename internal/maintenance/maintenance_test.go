package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePurger struct {
	before time.Time
	err    error
}

func (p *fakePurger) PurgeRead(_ context.Context, before time.Time) (int64, error) {
	p.before = before
	return 3, p.err
}

func TestCleanupUsesRetention(t *testing.T) {
	p := &fakePurger{}
	now := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	cleanup(context.Background(), p, now, quietLogger())

	want := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	if !p.before.Equal(want) {
		t.Errorf("cutoff = %s, want %s", p.before, want)
	}

	// Errors are logged, not raised.
	p.err = errors.New("db down")
	cleanup(context.Background(), p, now, quietLogger())
}

func TestRefresherCoalescesRequests(t *testing.T) {
	var calls atomic.Int32
	r := newRefresher(func(context.Context) error {
		calls.Add(1)
		return nil
	}, quietLogger())

	r.Request()
	r.Request()
	r.Request()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if n := calls.Load(); n != 1 {
		t.Errorf("refreshes = %d, want 1", n)
	}
}

func TestRefresherPublish(t *testing.T) {
	r := newRefresher(func(context.Context) error { return nil }, quietLogger())

	r.Publish(context.Background(), scoring.Event{Type: scoring.EventBallAdded})
	if len(r.trigger) != 0 {
		t.Error("ball_added requested a refresh")
	}
	r.Publish(context.Background(), scoring.Event{Type: scoring.EventMatchApproved})
	if len(r.trigger) != 1 {
		t.Error("match_approved did not request a refresh")
	}
}

func TestRefresherClearsLeaderboardAfterRefresh(t *testing.T) {
	c := cache.New(true)
	inv := cache.NewInvalidator(c)

	fail := make(chan bool, 2)
	fail <- true
	fail <- false
	var refreshes atomic.Int32
	r := newRefresher(func(context.Context) error {
		defer refreshes.Add(1)
		if <-fail {
			return errors.New("view locked")
		}
		return nil
	}, quietLogger()).OnRefresh(inv.ViewsRefreshed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	key := cache.LeaderboardKey("runs", 10)
	waitRefreshes := func(n int32) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for refreshes.Load() < n {
			if time.Now().After(deadline) {
				t.Fatalf("refreshes = %d, want %d", refreshes.Load(), n)
			}
			time.Sleep(5 * time.Millisecond)
		}
	}

	// A page read between approval and refresh holds pre-approval totals.
	c.Set(key, []byte(`[{"player_id":1,"value":90}]`), cache.TTLLeaderboard)
	r.Request()
	waitRefreshes(1)
	if _, _, ok := c.Get(key); !ok {
		t.Error("failed refresh dropped the leaderboard page")
	}

	r.Request()
	waitRefreshes(2)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, _, ok := c.Get(key); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("leaderboard page still cached after refresh")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
