package scoring_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestBuildReport_FallOfWickets(t *testing.T) {
	m := &scoring.Match{TeamName: "Team A", OpponentName: "Team B"}
	rows := []scoring.ManualScoreRow{
		{PlayerID: ptr(int64(1)), PlayerName: "Asha", Runs: 30, BallsFaced: 28, IsOut: true, WicketOver: ptr(7), WicketBall: ptr(2)},
		{PlayerID: ptr(int64(2)), PlayerName: "Bilal", Runs: 20, BallsFaced: 15},
		{PlayerID: ptr(int64(3)), PlayerName: "Chen", Runs: 15, BallsFaced: 22, IsOut: true},
	}

	r := scoring.BuildReport(m, rows, nil, 3)

	want := []scoring.FallOfWicket{
		{Number: 1, Score: 30, Over: "7.2", PlayerName: "Asha"},
		{Number: 2, Score: 65, Over: "-", PlayerName: "Chen"},
	}
	if !reflect.DeepEqual(r.FallOfWkts, want) {
		t.Errorf("fow = %+v, want %+v", r.FallOfWkts, want)
	}
}

func TestResultText(t *testing.T) {
	tests := []struct {
		team, opp int
		want      string
	}{
		{150, 140, "Team A won by 10 runs"},
		{140, 150, "Team B won by 10 runs"},
		{150, 150, "Match Tied"},
	}
	for _, tt := range tests {
		m := &scoring.Match{TeamName: "Team A", OpponentName: "Team B", TeamRuns: tt.team, OppRuns: tt.opp}
		if got := scoring.ResultText(m); got != tt.want {
			t.Errorf("ResultText(%d vs %d) = %q, want %q", tt.team, tt.opp, got, tt.want)
		}
	}
}

func TestBuildReport_Lists(t *testing.T) {
	m := &scoring.Match{TeamName: "Team A", OpponentName: "Team B", TeamOvers: "19.4", OppOvers: ""}
	rows := []scoring.ManualScoreRow{
		{PlayerID: ptr(int64(1)), PlayerName: "A", Runs: 12, BallsFaced: 10, IsOut: true, DismissalType: "bowled"},
		{PlayerID: ptr(int64(2)), PlayerName: "B", Runs: 44, BallsFaced: 30},
		{PlayerID: ptr(int64(3)), PlayerName: "C", Runs: 0, BallsFaced: 0},
		{PlayerID: ptr(int64(4)), PlayerName: "D", Runs: 30, BallsFaced: 20},
		{PlayerID: ptr(int64(5)), PlayerName: "E", Runs: 31, BallsFaced: 40, IsOut: true},
		{PlayerID: ptr(int64(1)), PlayerName: "A", Overs: 4, RunsConceded: 32, Wickets: 1},
		{PlayerID: ptr(int64(3)), PlayerName: "C", Overs: 4, RunsConceded: 20, Wickets: 3},
		{PlayerID: ptr(int64(2)), PlayerName: "B", Catches: 1},
		{PlayerID: ptr(int64(4)), PlayerName: "D", Catches: 3},
		{Runs: 200, IsOpponent: true},
	}

	r := scoring.BuildReport(m, rows, nil, 3)

	if len(r.FullBatting) != 4 {
		t.Fatalf("len(full batting) = %d, want 4", len(r.FullBatting))
	}
	if got := r.FullBatting[0].Dismissal; got != "bowled" {
		t.Errorf("dismissal = %q, want bowled", got)
	}
	if got := r.FullBatting[1].Dismissal; got != "Not Out" {
		t.Errorf("dismissal = %q, want Not Out", got)
	}
	if got := r.FullBatting[0].StrikeRate; got != "120.00" {
		t.Errorf("strike rate = %q, want 120.00", got)
	}

	var top []string
	for _, b := range r.TopBatting {
		top = append(top, b.PlayerName)
	}
	if !reflect.DeepEqual(top, []string{"B", "E", "D"}) {
		t.Errorf("top batting = %v, want [B E D]", top)
	}

	if len(r.FullBowling) != 2 || r.TopBowling[0].PlayerName != "C" {
		t.Errorf("bowling = %+v, top = %+v", r.FullBowling, r.TopBowling)
	}
	if got := r.FullBowling[0].Economy; got != "8.00" {
		t.Errorf("economy = %q, want 8.00", got)
	}

	if len(r.TopFielding) != 2 || r.TopFielding[0].PlayerName != "D" {
		t.Errorf("top fielding = %+v, want D first", r.TopFielding)
	}

	if r.Our.Overs != 19.4 || r.Opponent.Overs != 0 {
		t.Errorf("overs = %v / %v, want 19.4 / 0", r.Our.Overs, r.Opponent.Overs)
	}
}

func TestBuildReport_EmptyMatch(t *testing.T) {
	m := &scoring.Match{TeamName: "Team A", OpponentName: "Team B"}
	r := scoring.BuildReport(m, nil, nil, 0)

	if r.Result != "Match Tied" {
		t.Errorf("result = %q", r.Result)
	}
	if r.FullBatting == nil || r.FallOfWkts == nil || r.Wagon == nil {
		t.Error("empty lists should render as [] not null")
	}
	if len(r.Suggestions) != 0 {
		t.Errorf("suggestions = %+v, want none", r.Suggestions)
	}
}

func TestBuildReport_WagonGrouping(t *testing.T) {
	m := &scoring.Match{}
	shots := []scoring.WagonShot{
		{PlayerID: ptr(int64(1)), PlayerName: "A", Angle: ptr(30), Runs: 4},
		{PlayerID: ptr(int64(2)), PlayerName: "B", Runs: 1},
		{PlayerID: ptr(int64(1)), PlayerName: "A", Angle: ptr(200), Runs: 6},
	}
	r := scoring.BuildReport(m, nil, shots, 3)

	if len(r.Wagon) != 2 {
		t.Fatalf("len(wagon) = %d, want 2", len(r.Wagon))
	}
	if len(r.Wagon[0].Shots) != 2 || r.Wagon[0].Shots[1].Runs != 6 {
		t.Errorf("player A shots = %+v", r.Wagon[0].Shots)
	}
}

func TestBuildMatchReport(t *testing.T) {
	svc, store, id, _ := submitted(t, `{
		"batting": [{"player_id": 1, "runs": 55, "balls": 40, "is_out": true}],
		"team_summary": {"runs": 150, "wkts": 5, "overs": 20},
		"opponent_simple": {"runs": 140, "wickets": 10, "overs": 19.2}
	}`)
	store.AddPlayer(1, "Asha")

	r, err := svc.BuildMatchReport(context.Background(), id)
	if err != nil {
		t.Fatalf("BuildMatchReport() error = %v", err)
	}
	if r.Result != "Team A won by 10 runs" {
		t.Errorf("result = %q", r.Result)
	}
	if len(r.FullBatting) != 1 || r.FullBatting[0].PlayerName != "Asha" {
		t.Errorf("batting = %+v", r.FullBatting)
	}
	if !r.GeneratedAt.Equal(fixedNow) {
		t.Errorf("generated at = %v, want %v", r.GeneratedAt, fixedNow)
	}
	if r.Opponent.Wickets != 10 || r.Our.Runs != 150 {
		t.Errorf("summaries = %+v / %+v", r.Our, r.Opponent)
	}

	// Building a report never writes.
	commits := store.Commits()
	if _, err := svc.BuildMatchReport(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if store.Commits() != commits {
		t.Error("report build committed a transaction")
	}
}
