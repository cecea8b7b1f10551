package scoring

import (
	"context"
	"fmt"
)

// LeaderboardMax caps the leaderboard length.
const LeaderboardMax = 50

// Career is a player's ledger row with the rates derived at display time.
type Career struct {
	PlayerStats
	BattingAverage string `json:"batting_average"`
	StrikeRate     string `json:"strike_rate"`
	Economy        string `json:"economy"`
}

// CareerOf derives display rates from a ledger row. A missing row renders
// as all zeros.
func CareerOf(playerID int64, ps *PlayerStats) Career {
	if ps == nil {
		ps = &PlayerStats{PlayerID: playerID}
	}
	return Career{
		PlayerStats:    *ps,
		BattingAverage: ratio(float64(ps.TotalRuns), float64(ps.Outs)),
		StrikeRate:     ratio(float64(ps.TotalRuns)*100, float64(ps.TotalBalls)),
		Economy:        ratio(float64(ps.RunsConceded), ps.OversBowled),
	}
}

// CareerView returns a player's career numbers.
func (s *Service) CareerView(ctx context.Context, playerID int64) (*Career, error) {
	ps, err := s.store.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, s.surface("career_view", 0, err)
	}
	c := CareerOf(playerID, ps)
	return &c, nil
}

// Leaders returns the top players by one ledger counter.
func (s *Service) Leaders(ctx context.Context, stat LeaderStat, limit int) ([]LeaderRow, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: unknown leaderboard stat %q", ErrValidation, stat)
	}
	if limit <= 0 {
		limit = 10
	}
	limit = min(limit, LeaderboardMax)
	rows, err := s.store.TopPlayerStats(ctx, stat, limit)
	if err != nil {
		return nil, s.surface("leaders", 0, err)
	}
	return rows, nil
}
