package notifications

import (
	"sort"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Crossed returns the milestones reached by adding d to a ledger that now
// holds after. The pre-approval totals are after minus d.
func Crossed(after scoring.PlayerStats, d scoring.Delta) []Milestone {
	totals := map[string][2]int{
		"runs":    {after.TotalRuns - d.Runs, after.TotalRuns},
		"wickets": {after.Wickets - d.Wickets, after.Wickets},
		"catches": {after.Catches - d.Catches, after.Catches},
		"matches": {after.Matches - 1, after.Matches},
	}

	var out []Milestone
	for stat, marks := range milestones {
		before, now := totals[stat][0], totals[stat][1]
		for _, m := range marks {
			if before < m && now >= m {
				out = append(out, Milestone{Stat: stat, Value: m})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stat != out[j].Stat {
			return out[i].Stat < out[j].Stat
		}
		return out[i].Value < out[j].Value
	})
	return out
}
