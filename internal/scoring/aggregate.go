package scoring

import (
	"context"
	"fmt"
	"sort"
)

// Delta is one player's summed contribution to a single match, across all
// of that player's batting, bowling and fielding rows.
type Delta struct {
	PlayerID     int64   `json:"player_id"`
	Runs         int     `json:"runs"`
	BallsFaced   int     `json:"balls_faced"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	Outs         int     `json:"outs"`
	Overs        float64 `json:"overs"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Catches      int     `json:"catches"`
	Drops        int     `json:"drops"`
	Saves        int     `json:"saves"`
}

// Approval is the outcome of approving a match. Ledger holds each player's
// row as committed by this approval, in Deltas order.
type Approval struct {
	MatchID int64         `json:"match_id"`
	Deltas  []Delta       `json:"deltas"`
	Ledger  []PlayerStats `json:"ledger,omitempty"`
}

// LedgerAfter returns the player's ledger row as committed by this approval.
func (a *Approval) LedgerAfter(playerID int64) (PlayerStats, bool) {
	for _, ps := range a.Ledger {
		if ps.PlayerID == playerID {
			return ps, true
		}
	}
	return PlayerStats{}, false
}

// Aggregate groups rows by player and sums every counter. Opponent rows and
// rows without a player are ignored. The result is ordered by player id.
func Aggregate(rows []ManualScoreRow) []Delta {
	byPlayer := make(map[int64]*Delta)
	for _, r := range rows {
		if r.IsOpponent || r.PlayerID == nil {
			continue
		}
		d, ok := byPlayer[*r.PlayerID]
		if !ok {
			d = &Delta{PlayerID: *r.PlayerID}
			byPlayer[*r.PlayerID] = d
		}
		d.Runs += r.Runs
		d.BallsFaced += r.BallsFaced
		d.Fours += r.Fours
		d.Sixes += r.Sixes
		if r.IsOut {
			d.Outs++
		}
		d.Overs += r.Overs
		d.RunsConceded += r.RunsConceded
		d.Wickets += r.Wickets
		d.Catches += r.Catches
		d.Drops += r.Drops
		d.Saves += r.Saves
	}

	deltas := make([]Delta, 0, len(byPlayer))
	for _, d := range byPlayer {
		deltas = append(deltas, *d)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].PlayerID < deltas[j].PlayerID })
	return deltas
}

// Apply folds one match's delta into a ledger row. matches grows by exactly
// one no matter how many rows the player contributed.
func (ps *PlayerStats) Apply(d Delta) {
	ps.Matches++
	ps.TotalRuns += d.Runs
	ps.TotalBalls += d.BallsFaced
	ps.TotalFours += d.Fours
	ps.TotalSixes += d.Sixes
	ps.Outs += d.Outs
	ps.OversBowled += d.Overs
	ps.RunsConceded += d.RunsConceded
	ps.Wickets += d.Wickets
	ps.Catches += d.Catches
	ps.Drops += d.Drops
	ps.Saves += d.Saves
}

// ApproveMatch folds the match's own manual rows into the career ledger and
// marks the match completed, all in one transaction. Only coaches may
// approve, and only a pending_approval match can be approved, so a match is
// never counted twice. A match without own rows is left untouched and
// reported as ErrNoData.
func (s *Service) ApproveMatch(ctx context.Context, matchID int64, actor Actor) (*Approval, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}

	var approval *Approval
	err := s.inMatchTx(ctx, "approve_match", matchID, func(tx Tx, m *Match) error {
		if m.Status != StatusPendingApproval {
			return fmt.Errorf("%w: match %d is %s, want %s",
				ErrInvalidState, matchID, m.Status, StatusPendingApproval)
		}

		rows, err := tx.ListManualScores(ctx, matchID, true)
		if err != nil {
			return fmt.Errorf("list manual scores: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w: match %d has no manual scores", ErrNoData, matchID)
		}

		deltas := Aggregate(rows)
		ledger := make([]PlayerStats, 0, len(deltas))
		for _, d := range deltas {
			stats, err := tx.GetPlayerStats(ctx, d.PlayerID)
			if err != nil {
				return fmt.Errorf("load stats for player %d: %w", d.PlayerID, err)
			}
			if stats == nil {
				stats = &PlayerStats{PlayerID: d.PlayerID}
			}
			stats.Apply(d)
			if err := tx.SavePlayerStats(ctx, stats); err != nil {
				return fmt.Errorf("save stats for player %d: %w", d.PlayerID, err)
			}
			ledger = append(ledger, *stats)
		}

		if err := tx.DeleteOpponentScores(ctx, matchID); err != nil {
			return fmt.Errorf("delete opponent scores: %w", err)
		}
		if err := tx.DeleteOpponentPlayers(ctx, matchID); err != nil {
			return fmt.Errorf("delete opponent players: %w", err)
		}

		m.Status = StatusCompleted
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		approval = &Approval{MatchID: matchID, Deltas: deltas, Ledger: ledger}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Match approved", "match_id", matchID, "players", len(approval.Deltas))
	s.publish(ctx, Event{
		Type:     EventMatchApproved,
		MatchID:  matchID,
		Status:   StatusCompleted,
		Approval: approval,
	})
	return approval, nil
}
