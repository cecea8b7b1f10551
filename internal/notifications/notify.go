// Package notifications writes in-app notifications for players after their
// match statistics are approved.
//
// Pipeline: approval event → queue → build one summary per player plus any
// career milestones crossed → persist. The worker runs after the approval
// transaction has committed and never affects it.
package notifications

import "time"

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	queueSize        = 64
	defaultListLimit = 50
	maxListLimit     = 200

	// Retention for notifications a player has already read.
	Retention = 30 * 24 * time.Hour

	titleApproved  = "Match stats approved"
	titleMilestone = "Career milestone"
)

// Career totals that trigger a milestone notification when crossed.
var milestones = map[string][]int{
	"runs":    {100, 250, 500, 1000, 2500, 5000},
	"wickets": {10, 25, 50, 100, 200},
	"catches": {10, 25, 50, 100},
	"matches": {10, 25, 50, 100, 200},
}

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Notification is one in-app message for a player.
type Notification struct {
	ID        int64     `json:"id"`
	PlayerID  int64     `json:"player_id"`
	MatchID   *int64    `json:"match_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Milestone is a career total a player reached in one approval.
type Milestone struct {
	Stat  string
	Value int
}
