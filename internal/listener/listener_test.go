package listener

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

type sink struct{ events []scoring.Event }

func (s *sink) Publish(_ context.Context, e scoring.Event) { s.events = append(s.events, e) }

type fakeExec struct {
	sql  string
	args []any
	err  error
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return pgconn.CommandTag{}, f.err
}

func approvalEvent() scoring.Event {
	return scoring.Event{
		Type:    scoring.EventMatchApproved,
		MatchID: 12,
		Status:  scoring.StatusCompleted,
		Approval: &scoring.Approval{MatchID: 12, Deltas: []scoring.Delta{
			{PlayerID: 3, Runs: 40},
			{PlayerID: 9, Wickets: 2},
		}},
	}
}

func TestEnvelopeRoundTripKeepsPlayers(t *testing.T) {
	env := Encode("api-1", approvalEvent(), time.Unix(1700000000, 0))
	if len(env.PlayerIDs) != 2 || env.PlayerIDs[0] != 3 || env.PlayerIDs[1] != 9 {
		t.Fatalf("PlayerIDs = %v, want [3 9]", env.PlayerIDs)
	}

	e := env.Event()
	if e.Type != scoring.EventMatchApproved || e.MatchID != 12 || e.Status != scoring.StatusCompleted {
		t.Errorf("Event() = %+v", e)
	}
	if e.Approval == nil || len(e.Approval.Deltas) != 2 || e.Approval.Deltas[1].PlayerID != 9 {
		t.Errorf("Approval = %+v, want deltas for players 3 and 9", e.Approval)
	}
	if e.Approval.Deltas[0].Runs != 0 {
		t.Errorf("relayed delta carries runs = %d, want 0", e.Approval.Deltas[0].Runs)
	}
}

func TestEnvelopeWithoutApproval(t *testing.T) {
	e := Encode("api-1", scoring.Event{Type: scoring.EventBallAdded, MatchID: 4}, time.Now()).Event()
	if e.Approval != nil {
		t.Errorf("Approval = %+v, want nil", e.Approval)
	}
}

func TestRelaySkipsOwnOrigin(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	payload, _ := json.Marshal(Encode("api-1", approvalEvent(), time.Now()))

	s := &sink{}
	if relay(context.Background(), string(payload), "api-1", s, logger) {
		t.Error("relay() of own event = true, want false")
	}
	if !relay(context.Background(), string(payload), "api-2", s, logger) {
		t.Error("relay() of foreign event = false, want true")
	}
	if relay(context.Background(), "{not json", "api-2", s, logger) {
		t.Error("relay() of bad payload = true, want false")
	}
	if len(s.events) != 1 || s.events[0].MatchID != 12 {
		t.Errorf("sink got %+v, want the one foreign event", s.events)
	}
}

func TestNotifierPublish(t *testing.T) {
	db := &fakeExec{}
	n := NewNotifier(db, "admin", slog.New(slog.DiscardHandler))
	n.Publish(context.Background(), approvalEvent())

	if !strings.Contains(db.sql, "pg_notify") {
		t.Fatalf("sql = %q, want pg_notify", db.sql)
	}
	if len(db.args) != 2 || db.args[0] != Channel {
		t.Fatalf("args = %v, want channel first", db.args)
	}
	var env Envelope
	if err := json.Unmarshal([]byte(db.args[1].(string)), &env); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if env.Origin != "admin" || env.MatchID != 12 {
		t.Errorf("envelope = %+v", env)
	}
}

func TestNotifierPublishFailureIsSwallowed(t *testing.T) {
	db := &fakeExec{err: errors.New("connection reset")}
	NewNotifier(db, "admin", slog.New(slog.DiscardHandler)).Publish(context.Background(), approvalEvent())
}
