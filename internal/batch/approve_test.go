package batch

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
	"github.com/albapepper/scoracle-cricket/internal/scoring/scoringtest"
)

var coach = scoring.Actor{Role: scoring.RoleCoach, CoachID: ptr(int64(1))}

func ptr[T any](v T) *T { return &v }

// pendingMatch stores a match and submits rows for players through the
// service so it reaches pending_approval the normal way.
func pendingMatch(t *testing.T, svc *scoring.Service, store *scoringtest.MemStore, body string) int64 {
	t.Helper()
	id := store.AddMatch(scoring.Match{
		TeamName:      "Lions",
		OpponentName:  "Tigers",
		Status:        scoring.StatusOngoing,
		ScorerCoachID: ptr(int64(1)),
	})
	p, err := scoring.DecodeManualPayload([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := svc.SubmitManualScore(context.Background(), id, coach, p); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return id
}

func TestApprovePending(t *testing.T) {
	store := scoringtest.New()
	svc := scoring.NewService(store, slog.New(slog.DiscardHandler))

	a := pendingMatch(t, svc, store, `{"batting":[{"player_id":1,"runs":10,"balls":12}]}`)
	b := pendingMatch(t, svc, store, `{"batting":[{"player_id":1,"runs":5,"balls":3}],"fielding":[{"player_id":2,"catches":1}]}`)
	empty := pendingMatch(t, svc, store, `{"opponent_simple":{"runs":120,"wickets":8,"overs":"20"}}`)
	store.AddMatch(scoring.Match{TeamName: "Lions", Status: scoring.StatusOngoing})

	res := ApprovePending(context.Background(), store, svc, coach, 0, 3, slog.New(slog.DiscardHandler))

	if res.MatchesFound != 3 || res.MatchesProcessed != 3 {
		t.Fatalf("found/processed = %d/%d, want 3/3", res.MatchesFound, res.MatchesProcessed)
	}
	if res.MatchesApproved != 2 || res.MatchesSkipped != 1 || res.MatchesFailed != 0 {
		t.Errorf("approved/skipped/failed = %d/%d/%d, want 2/1/0",
			res.MatchesApproved, res.MatchesSkipped, res.MatchesFailed)
	}
	if res.PlayersUpdated != 3 {
		t.Errorf("PlayersUpdated = %d, want 3", res.PlayersUpdated)
	}
	for i, want := range []int64{a, b, empty} {
		if res.Results[i].MatchID != want {
			t.Errorf("Results[%d].MatchID = %d, want %d", i, res.Results[i].MatchID, want)
		}
	}

	ps := store.Stats(1)
	if ps == nil || ps.Matches != 2 || ps.TotalRuns != 15 {
		t.Errorf("player 1 ledger = %+v, want 2 matches 15 runs", ps)
	}
	if got := store.Match(empty).Status; got != scoring.StatusPendingApproval {
		t.Errorf("empty match status = %s, want pending_approval", got)
	}

	// A second run finds only the match without own rows.
	again := ApprovePending(context.Background(), store, svc, coach, 0, 3, slog.New(slog.DiscardHandler))
	if again.MatchesFound != 1 || again.MatchesSkipped != 1 {
		t.Errorf("second run = %s, want 1 found 1 skipped", again.Summary())
	}
	if ps := store.Stats(1); ps.Matches != 2 {
		t.Errorf("player 1 matches after rerun = %d, want 2", ps.Matches)
	}
}

func TestApprovePending_RecordsFailures(t *testing.T) {
	store := scoringtest.New()
	svc := scoring.NewService(store, slog.New(slog.DiscardHandler))
	pendingMatch(t, svc, store, `{"batting":[{"player_id":1,"runs":10,"balls":12}]}`)

	player := scoring.Actor{Role: scoring.RolePlayer, PlayerID: ptr(int64(1))}
	res := ApprovePending(context.Background(), store, svc, player, 10, 2, slog.New(slog.DiscardHandler))
	if res.MatchesFailed != 1 || len(res.Errors) != 1 {
		t.Errorf("failed = %d errors = %v, want 1 failure", res.MatchesFailed, res.Errors)
	}
}

type failingLister struct{}

func (failingLister) PendingMatchIDs(context.Context, int) ([]int64, error) {
	return nil, errors.New("connection reset")
}

func TestApprovePending_ListError(t *testing.T) {
	svc := scoring.NewService(scoringtest.New(), slog.New(slog.DiscardHandler))
	res := ApprovePending(context.Background(), failingLister{}, svc, coach, 0, 1, slog.New(slog.DiscardHandler))
	if len(res.Errors) != 1 || res.MatchesFound != 0 {
		t.Errorf("result = %+v, want one error and nothing found", res)
	}
}
