package scoring_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
	"github.com/albapepper/scoracle-cricket/internal/scoring/scoringtest"
)

var (
	fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	scorerCoach = scoring.Actor{Role: scoring.RoleCoach, CoachID: ptr(int64(7))}
	otherCoach  = scoring.Actor{Role: scoring.RoleCoach, CoachID: ptr(int64(8))}
	scorerPlyr  = scoring.Actor{Role: scoring.RolePlayer, PlayerID: ptr(int64(21))}
	otherPlayer = scoring.Actor{Role: scoring.RolePlayer, PlayerID: ptr(int64(22))}
)

func ptr[T any](v T) *T { return &v }

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	events []scoring.Event
}

func (r *recorder) Publish(_ context.Context, e scoring.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []scoring.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]scoring.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newService(t *testing.T) (*scoring.Service, *scoringtest.MemStore, *recorder) {
	t.Helper()
	store := scoringtest.New()
	rec := &recorder{}
	svc := scoring.NewService(store, slog.New(slog.DiscardHandler),
		scoring.WithPublisher(rec),
		scoring.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, store, rec
}

// seedMatch stores an ongoing match scored by coach 7, with player 21 as
// the alternative scorer when scorerPlayer is set.
func seedMatch(store *scoringtest.MemStore, status scoring.Status, scorerPlayer bool) int64 {
	m := scoring.Match{
		Title:          "Sunday League",
		TeamName:       "Team A",
		OpponentName:   "Team B",
		Status:         status,
		ScoringMode:    scoring.ModeManual,
		CurrentInnings: 1,
		ScorerCoachID:  ptr(int64(7)),
	}
	if scorerPlayer {
		m.ScorerCoachID = nil
		m.ScorerPlayerID = ptr(int64(21))
	}
	return store.AddMatch(m)
}

func mustDecode(t *testing.T, body string) *scoring.ManualPayload {
	t.Helper()
	p, err := scoring.DecodeManualPayload([]byte(body))
	if err != nil {
		t.Fatalf("DecodeManualPayload() error = %v", err)
	}
	return p
}
