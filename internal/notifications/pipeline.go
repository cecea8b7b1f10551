package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Source is the read access the pipeline needs.
type Source interface {
	GetMatch(ctx context.Context, matchID int64) (*scoring.Match, error)
	GetPlayerStats(ctx context.Context, playerID int64) (*scoring.PlayerStats, error)
}

// Writer persists notifications.
type Writer interface {
	Insert(ctx context.Context, ns []Notification) (int, error)
}

// Run builds and persists the notifications for one approval.
func Run(ctx context.Context, src Source, w Writer, a scoring.Approval, logger *slog.Logger) error {
	if len(a.Deltas) == 0 {
		return nil
	}

	m, err := src.GetMatch(ctx, a.MatchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}

	var pending []Notification
	for _, d := range a.Deltas {
		pending = append(pending, Summary(m, d))

		// Later approvals may already have moved the stored ledger, so prefer
		// the row this approval committed.
		ledger, ok := a.LedgerAfter(d.PlayerID)
		if !ok {
			stored, err := src.GetPlayerStats(ctx, d.PlayerID)
			if err != nil {
				logger.Warn("Load ledger for milestones failed", "player_id", d.PlayerID, "error", err)
				continue
			}
			if stored == nil {
				continue
			}
			ledger = *stored
		}
		for _, ms := range Crossed(ledger, d) {
			pending = append(pending, milestoneNotification(m.ID, d.PlayerID, ms))
		}
	}

	inserted, err := w.Insert(ctx, pending)
	if err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	logger.Info("Approval notifications written",
		"match_id", a.MatchID, "players", len(a.Deltas), "count", inserted)
	return nil
}

// Summary builds the per-player approval notification.
func Summary(m *scoring.Match, d scoring.Delta) Notification {
	matchID := m.ID
	return Notification{
		PlayerID: d.PlayerID,
		MatchID:  &matchID,
		Title:    titleApproved,
		Message:  buildMessage(m, d),
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func buildMessage(m *scoring.Match, d scoring.Delta) string {
	var parts []string
	if d.BallsFaced > 0 || d.Runs > 0 {
		parts = append(parts, fmt.Sprintf("%d runs off %d balls", d.Runs, d.BallsFaced))
	}
	if d.Overs > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d in %s overs", d.Wickets, d.RunsConceded, scoring.FormatOvers(d.Overs)))
	}
	if d.Catches > 0 {
		parts = append(parts, plural(d.Catches, "catch", "catches"))
	}

	head := fmt.Sprintf("Your stats for %s vs %s were added to your career", m.TeamName, m.OpponentName)
	if len(parts) == 0 {
		return head + "."
	}
	return head + ": " + strings.Join(parts, ", ") + "."
}

func milestoneNotification(matchID, playerID int64, ms Milestone) Notification {
	return Notification{
		PlayerID: playerID,
		MatchID:  &matchID,
		Title:    titleMilestone,
		Message:  fmt.Sprintf("You reached %d career %s.", ms.Value, ms.Stat),
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
