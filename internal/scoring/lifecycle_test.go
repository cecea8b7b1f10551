package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestBattingSideFromToss(t *testing.T) {
	tests := []struct {
		winner, decision string
		want             string
	}{
		{"Team A", "bat", scoring.SideTeam},
		{"Team A", "bowl", scoring.SideOpponent},
		{"Team B", "bat", scoring.SideOpponent},
		{"Team B", "bowl", scoring.SideTeam},
	}
	for _, tt := range tests {
		if got := scoring.BattingSideFromToss("Team A", tt.winner, tt.decision); got != tt.want {
			t.Errorf("BattingSideFromToss(%s, %s) = %s, want %s", tt.winner, tt.decision, got, tt.want)
		}
	}
}

func TestCreateMatch(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, scorerCoach, scoring.NewMatch{
		Title:        "Friendly",
		TeamName:     "Team A",
		OpponentName: "Team B",
		TossWinner:   "Team B",
		TossDecision: "bowl",
	})
	if err != nil {
		t.Fatalf("CreateMatch() error = %v", err)
	}
	stored := store.Match(m.ID)
	if stored == nil {
		t.Fatal("match not stored")
	}
	if stored.Status != scoring.StatusOngoing || stored.CurrentInnings != 1 {
		t.Errorf("status/innings = %s/%d", stored.Status, stored.CurrentInnings)
	}
	if stored.BattingSide != scoring.SideTeam {
		t.Errorf("batting side = %s, want team", stored.BattingSide)
	}
	if stored.ScoringMode != scoring.ModeManual {
		t.Errorf("scoring mode = %s, want manual", stored.ScoringMode)
	}
	if stored.ScorerCoachID == nil || *stored.ScorerCoachID != 7 || stored.ScorerPlayerID != nil {
		t.Errorf("scorer = coach %v player %v, want coach 7", stored.ScorerCoachID, stored.ScorerPlayerID)
	}

	pm, err := svc.CreateMatch(ctx, scorerCoach, scoring.NewMatch{
		TeamName:       "Team A",
		OpponentName:   "Team C",
		ScorerType:     scoring.RolePlayer,
		ScorerPlayerID: ptr(int64(21)),
	})
	if err != nil {
		t.Fatalf("CreateMatch(player scorer) error = %v", err)
	}
	if pm.ScorerCoachID != nil || pm.ScorerPlayerID == nil || *pm.ScorerPlayerID != 21 {
		t.Errorf("scorer = coach %v player %v, want player 21", pm.ScorerCoachID, pm.ScorerPlayerID)
	}
	if !scoring.CanScore(pm, scorerPlyr) || scoring.CanScore(pm, scorerCoach) {
		t.Error("player-scored match should accept only player 21")
	}
}

func TestCreateMatch_Rejects(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateMatch(ctx, scorerPlyr, scoring.NewMatch{TeamName: "A", OpponentName: "B"}); !errors.Is(err, scoring.ErrNotCoach) {
		t.Errorf("player create: error = %v, want ErrNotCoach", err)
	}
	if _, err := svc.CreateMatch(ctx, scorerCoach, scoring.NewMatch{TeamName: "A"}); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("missing opponent: error = %v, want ErrValidation", err)
	}
	bad := scoring.NewMatch{TeamName: "A", OpponentName: "B", TossDecision: "field"}
	if _, err := svc.CreateMatch(ctx, scorerCoach, bad); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("bad toss decision: error = %v, want ErrValidation", err)
	}
}

func TestStartInnings_Clamps(t *testing.T) {
	svc, store, rec := newService(t)
	ctx := context.Background()
	id := seedMatch(store, scoring.StatusOngoing, false)

	wants := []int{2, 2, 2}
	for i, want := range wants {
		m, err := svc.StartInnings(ctx, id, scorerCoach, scoring.SideOpponent)
		if err != nil {
			t.Fatalf("StartInnings #%d error = %v", i+1, err)
		}
		if m.CurrentInnings != want {
			t.Errorf("call %d: innings = %d, want %d", i+1, m.CurrentInnings, want)
		}
	}

	m := store.Match(id)
	if m.BattingSide != scoring.SideOpponent {
		t.Errorf("batting side = %s", m.BattingSide)
	}
	if m.StartedAt == nil || !m.StartedAt.Equal(fixedNow) {
		t.Errorf("started at = %v, want %v", m.StartedAt, fixedNow)
	}
	if m.Status != scoring.StatusOngoing {
		t.Errorf("status = %s, want ongoing", m.Status)
	}
	if n := len(rec.types()); n != 3 {
		t.Errorf("events = %d, want 3", n)
	}
}

func TestStartInnings_ResetsOutOfRange(t *testing.T) {
	svc, store, _ := newService(t)
	id := store.AddMatch(scoring.Match{TeamName: "A", OpponentName: "B", Status: scoring.StatusOngoing})

	m, err := svc.StartInnings(context.Background(), id, scorerCoach, "")
	if err != nil {
		t.Fatalf("StartInnings() error = %v", err)
	}
	if m.CurrentInnings != 1 {
		t.Errorf("innings = %d, want 1", m.CurrentInnings)
	}
}

func TestStartInnings_Rejects(t *testing.T) {
	svc, store, _ := newService(t)
	id := seedMatch(store, scoring.StatusOngoing, false)
	ctx := context.Background()

	if _, err := svc.StartInnings(ctx, id, scorerPlyr, ""); !errors.Is(err, scoring.ErrNotCoach) {
		t.Errorf("player: error = %v, want ErrNotCoach", err)
	}
	if _, err := svc.StartInnings(ctx, id, scorerCoach, "both"); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("bad side: error = %v, want ErrValidation", err)
	}
	if got := store.Match(id).CurrentInnings; got != 1 {
		t.Errorf("innings = %d, want unchanged 1", got)
	}
}

func TestEndInnings(t *testing.T) {
	svc, store, _ := newService(t)
	id := seedMatch(store, scoring.StatusPendingApproval, false)

	if _, err := svc.EndInnings(context.Background(), id, otherCoach); err != nil {
		t.Fatalf("EndInnings() error = %v", err)
	}
	m := store.Match(id)
	if m.CompletedAt == nil || !m.CompletedAt.Equal(fixedNow) {
		t.Errorf("completed at = %v", m.CompletedAt)
	}
	if m.Status != scoring.StatusPendingApproval {
		t.Errorf("status = %s, want unchanged", m.Status)
	}
}

func TestUpdateResult(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	id := seedMatch(store, scoring.StatusOngoing, false)

	if err := svc.UpdateResult(ctx, id, scorerCoach, "  Won by 3 wickets "); err != nil {
		t.Fatalf("UpdateResult() error = %v", err)
	}
	if got := store.Match(id).Result; got != "Won by 3 wickets" {
		t.Errorf("result = %q", got)
	}

	done := seedMatch(store, scoring.StatusCompleted, false)
	if err := svc.UpdateResult(ctx, done, scorerCoach, "x"); !errors.Is(err, scoring.ErrInvalidState) {
		t.Errorf("completed: error = %v, want ErrInvalidState", err)
	}
}

func TestSelectSquad(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	id := seedMatch(store, scoring.StatusOngoing, false)

	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 11}
	sq := scoring.Squad{
		PlayerIDs: ids,
		Opponents: []scoring.OpponentPlayer{{Name: " Opp One ", Role: "Batsman"}, {Name: ""}},
	}
	if err := svc.SelectSquad(ctx, id, scorerCoach, sq); err != nil {
		t.Fatalf("SelectSquad() error = %v", err)
	}
	if got := len(store.Squad(id)); got != 11 {
		t.Errorf("squad size = %d, want 11", got)
	}
	opps := store.Opponents(id)
	if len(opps) != 1 || opps[0].Name != "Opp One" || opps[0].MatchID != id {
		t.Errorf("opponents = %+v", opps)
	}

	// Reselection replaces the previous squad.
	sq.PlayerIDs = []int64{21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}
	sq.Opponents = nil
	if err := svc.SelectSquad(ctx, id, scorerCoach, sq); err != nil {
		t.Fatalf("reselect error = %v", err)
	}
	if got := store.Squad(id); len(got) != 12 || got[0] != 21 {
		t.Errorf("squad = %v", got)
	}
	if got := len(store.Opponents(id)); got != 0 {
		t.Errorf("opponents = %d, want 0", got)
	}

	short := scoring.Squad{PlayerIDs: []int64{1, 2, 3}}
	if err := svc.SelectSquad(ctx, id, scorerCoach, short); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("short squad: error = %v, want ErrValidation", err)
	}
}
