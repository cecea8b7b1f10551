// Package batch approves pending matches in bulk. Each match is approved in
// its own transaction by the scoring service; a failure on one match is
// recorded and does not stop the run.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	DefaultMaxMatches = 50
	DefaultWorkers    = 4
)

// --------------------------------------------------------------------------
// Dependencies
// --------------------------------------------------------------------------

// Lister finds matches awaiting approval.
type Lister interface {
	PendingMatchIDs(ctx context.Context, limit int) ([]int64, error)
}

// Approver approves one match.
type Approver interface {
	ApproveMatch(ctx context.Context, matchID int64, actor scoring.Actor) (*scoring.Approval, error)
}

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Result tracks the outcome of approving a single match.
type Result struct {
	MatchID  int64
	Players  int
	Success  bool
	Skipped  bool // no own rows to aggregate
	Error    string
	Duration time.Duration
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	status := "ok"
	switch {
	case r.Skipped:
		status = "skipped"
	case !r.Success:
		status = "FAILED"
	}
	return fmt.Sprintf("match=%d players=%d status=%s dur=%s",
		r.MatchID, r.Players, status, r.Duration.Round(time.Millisecond))
}

// RunResult tracks the outcome of a full bulk run.
type RunResult struct {
	MatchesFound     int
	MatchesProcessed int
	MatchesApproved  int
	MatchesSkipped   int
	MatchesFailed    int
	PlayersUpdated   int
	Duration         time.Duration
	Errors           []string
	Results          []Result
}

// Summary returns a human-readable summary.
func (r *RunResult) Summary() string {
	return fmt.Sprintf(
		"found=%d processed=%d approved=%d skipped=%d failed=%d players=%d dur=%s",
		r.MatchesFound, r.MatchesProcessed, r.MatchesApproved, r.MatchesSkipped,
		r.MatchesFailed, r.PlayersUpdated, r.Duration.Round(time.Millisecond))
}
