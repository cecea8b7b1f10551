package scoring_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestCareerOf(t *testing.T) {
	c := scoring.CareerOf(3, &scoring.PlayerStats{
		PlayerID:     3,
		TotalRuns:    250,
		TotalBalls:   200,
		Outs:         5,
		OversBowled:  10,
		RunsConceded: 65,
	})
	if c.BattingAverage != "50.00" || c.StrikeRate != "125.00" || c.Economy != "6.50" {
		t.Errorf("rates = %s / %s / %s", c.BattingAverage, c.StrikeRate, c.Economy)
	}

	empty := scoring.CareerOf(4, nil)
	if empty.PlayerID != 4 || empty.BattingAverage != "-" || empty.Economy != "-" {
		t.Errorf("empty career = %+v", empty)
	}
}

func TestLeaders(t *testing.T) {
	svc, store, _ := newService(t)
	store.AddPlayer(1, "Asha")
	store.AddPlayer(2, "Bilal")
	store.SetStats(scoring.PlayerStats{PlayerID: 1, TotalRuns: 300, Wickets: 2})
	store.SetStats(scoring.PlayerStats{PlayerID: 2, TotalRuns: 120, Wickets: 9})

	rows, err := svc.Leaders(context.Background(), scoring.LeaderWickets, 0)
	if err != nil {
		t.Fatalf("Leaders() error = %v", err)
	}
	want := []scoring.LeaderRow{
		{PlayerID: 2, PlayerName: "Bilal", Value: 9},
		{PlayerID: 1, PlayerName: "Asha", Value: 2},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("leaders = %+v, want %+v", rows, want)
	}

	if _, err := svc.Leaders(context.Background(), "sixes", 5); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("unknown stat: error = %v, want ErrValidation", err)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		in   scoring.PlayerNumbers
		want []string
	}{
		{
			"fifty at a fast rate",
			scoring.PlayerNumbers{Runs: 64, Balls: 40},
			[]string{scoring.NoteBatExcellent, scoring.NoteStrikeHigh},
		},
		{
			"slow thirty",
			scoring.PlayerNumbers{Runs: 30, Balls: 60},
			[]string{scoring.NoteBatGood, scoring.NoteStrikeLow},
		},
		{
			"expensive wicketless spell",
			scoring.PlayerNumbers{Overs: 4, RunsConceded: 40},
			[]string{scoring.NoteBowlWicketless, scoring.NoteEconomyHigh},
		},
		{
			"three wickets economically",
			scoring.PlayerNumbers{Overs: 4, RunsConceded: 20, Wickets: 3},
			[]string{scoring.NoteBowlStrong, scoring.NoteEconomyGood},
		},
		{
			"dropped catch",
			scoring.PlayerNumbers{Catches: 1, Drops: 1},
			[]string{scoring.NoteCatchDrops},
		},
		{
			"two catches",
			scoring.PlayerNumbers{Catches: 2},
			[]string{scoring.NoteCatchStrong},
		},
		{"did nothing", scoring.PlayerNumbers{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.Suggest(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuggestions_GroupsByPlayer(t *testing.T) {
	rows := []scoring.ManualScoreRow{
		{PlayerID: ptr(int64(1)), PlayerName: "Asha", Runs: 10, BallsFaced: 30},
		{PlayerID: ptr(int64(1)), PlayerName: "Asha", Overs: 2, RunsConceded: 10},
		{PlayerID: ptr(int64(2)), PlayerName: "Bilal"},
		{Runs: 100, IsOpponent: true},
	}
	got := scoring.Suggestions(rows)
	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1", len(got))
	}
	if got[0].PlayerName != "Asha" || len(got[0].Notes) != 4 {
		t.Errorf("suggestion = %+v", got[0])
	}
}
