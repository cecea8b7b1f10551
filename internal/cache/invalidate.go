package cache

import (
	"context"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Invalidator drops cached views made stale by committed match events. It
// implements scoring.Publisher.
type Invalidator struct {
	c *Cache
}

func NewInvalidator(c *Cache) *Invalidator {
	return &Invalidator{c: c}
}

func (inv *Invalidator) Publish(_ context.Context, e scoring.Event) {
	inv.c.Delete(ReportKey(e.MatchID))
	if e.Type != scoring.EventMatchApproved {
		return
	}
	// Ledger reads change only on approval.
	inv.c.DeletePrefix(leaderboardPrefix)
	if e.Approval != nil {
		for _, d := range e.Approval.Deltas {
			inv.c.Delete(CareerKey(d.PlayerID))
		}
	}
}

// ViewsRefreshed drops leaderboard pages built from the materialized view
// before its latest refresh.
func (inv *Invalidator) ViewsRefreshed() {
	inv.c.DeletePrefix(leaderboardPrefix)
}
