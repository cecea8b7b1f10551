// Package scoring implements the manual-scoring, live ball ledger, approval
// and report pipeline for club matches.
//
// Write path: Scoring Intake replaces a match's manual rows (or appends a
// live ball) → a coach approves → the Aggregator folds the match's rows into
// the per-player career ledger exactly once and marks the match completed.
// The Report Builder is a pure read path over the stored rows.
package scoring

import "time"

// --------------------------------------------------------------------------
// Enums
// --------------------------------------------------------------------------

// Status is the match lifecycle state.
type Status string

const (
	StatusOngoing         Status = "ongoing"
	StatusPendingApproval Status = "pending_approval"
	StatusCompleted       Status = "completed"
)

// ScoringMode records how a match is scored. Informational only.
type ScoringMode string

const (
	ModeLive   ScoringMode = "live"
	ModeManual ScoringMode = "manual"
	ModeMixed  ScoringMode = "mixed"
)

// Role is the actor's club role.
type Role string

const (
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
)

// Batting sides.
const (
	SideTeam     = "team"
	SideOpponent = "opponent"
)

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

// Match is a single fixture between the club team and an opponent.
type Match struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	MatchDate    *time.Time  `json:"match_date,omitempty"`
	Format       string      `json:"format"`
	Venue        string      `json:"venue"`
	ScoringMode  ScoringMode `json:"scoring_mode"`
	TeamName     string      `json:"team_name"`
	OpponentName string      `json:"opponent_name"`
	Status       Status      `json:"status"`

	ScorerCoachID  *int64 `json:"scorer_coach_id,omitempty"`
	ScorerPlayerID *int64 `json:"scorer_player_id,omitempty"`

	TossWinner   string `json:"toss_winner"`
	TossDecision string `json:"toss_decision"` // bat | bowl

	CurrentInnings int        `json:"current_innings"`
	BattingSide    string     `json:"batting_side"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	Result    string `json:"result"`
	TeamRuns  int    `json:"team_runs"`
	TeamWkts  int    `json:"team_wkts"`
	TeamOvers string `json:"team_overs"`
	OppRuns   int    `json:"opp_runs"`
	OppWkts   int    `json:"opp_wkts"`
	OppOvers  string `json:"opp_overs"`
}

// ManualScoreRow is one submitted line for one player (or the opponent
// aggregate when PlayerID is nil). Batting, bowling and fielding entries for
// the same player are separate rows.
type ManualScoreRow struct {
	ID       int64  `json:"id"`
	MatchID  int64  `json:"match_id"`
	PlayerID *int64 `json:"player_id,omitempty"`

	// Batting
	Runs          int    `json:"runs"`
	BallsFaced    int    `json:"balls_faced"`
	Fours         int    `json:"fours"`
	Sixes         int    `json:"sixes"`
	IsOut         bool   `json:"is_out"`
	WicketOver    *int   `json:"wicket_over,omitempty"`
	WicketBall    *int   `json:"wicket_ball,omitempty"`
	DismissalType string `json:"dismissal_type"`

	// Bowling
	Overs        float64 `json:"overs"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`

	// Fielding
	Catches int `json:"catches"`
	Drops   int `json:"drops"`
	Saves   int `json:"saves"`

	IsOpponent bool `json:"is_opponent"`

	// PlayerName is filled by read-side joins; never written.
	PlayerName string `json:"player_name,omitempty"`
}

// WagonShot is a single wagon-wheel entry from a manual submission.
type WagonShot struct {
	ID         int64  `json:"id"`
	MatchID    int64  `json:"match_id"`
	PlayerID   *int64 `json:"player_id,omitempty"`
	Angle      *int   `json:"angle,omitempty"`
	Distance   int    `json:"distance"`
	Runs       int    `json:"runs"`
	ShotType   string `json:"shot_type"`
	IsOpponent bool   `json:"is_opponent"`

	PlayerName string `json:"player_name,omitempty"`
}

// LiveBall is one delivery in the live ball-by-ball ledger. Rows are
// append-only; ID order is chronological.
type LiveBall struct {
	ID         int64     `json:"id"`
	MatchID    int64     `json:"match_id"`
	OverNo     int       `json:"over_no"`
	BallNo     int       `json:"ball_no"`
	Striker    string    `json:"striker"`
	NonStriker string    `json:"non_striker"`
	Bowler     string    `json:"bowler"`
	Runs       int       `json:"runs"`
	Extras     string    `json:"extras"`
	Wicket     string    `json:"wicket"`
	Commentary string    `json:"commentary"`
	Angle      *int      `json:"angle,omitempty"`
	ShotType   string    `json:"shot_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlayerStats is the career ledger row for one player. Counters only ever
// grow; rates are derived at display time.
type PlayerStats struct {
	PlayerID     int64   `json:"player_id"`
	Matches      int     `json:"matches"`
	TotalRuns    int     `json:"total_runs"`
	TotalBalls   int     `json:"total_balls"`
	TotalFours   int     `json:"total_fours"`
	TotalSixes   int     `json:"total_sixes"`
	Outs         int     `json:"outs"`
	Wickets      int     `json:"wickets"`
	OversBowled  float64 `json:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	Catches      int     `json:"catches"`
	Drops        int     `json:"drops"`
	Saves        int     `json:"saves"`
}

// OpponentPlayer is a temporary opponent squad member for one match.
type OpponentPlayer struct {
	MatchID int64  `json:"match_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// Actor is the identity performing an operation, as supplied by the
// session layer.
type Actor struct {
	Role     Role
	CoachID  *int64
	PlayerID *int64
}

// IsCoach reports whether the actor holds the coach role.
func (a Actor) IsCoach() bool {
	return a.Role == RoleCoach
}

// BallPointer is an (over, ball) position.
type BallPointer struct {
	Over int `json:"over"`
	Ball int `json:"ball"`
}
