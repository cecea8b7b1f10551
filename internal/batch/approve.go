package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// ApprovePending approves up to maxMatches pending matches on a pool of
// workers, acting as actor. Results are ordered by match id.
func ApprovePending(
	ctx context.Context,
	lister Lister,
	approver Approver,
	actor scoring.Actor,
	maxMatches int,
	workers int,
	logger *slog.Logger,
) RunResult {
	start := time.Now()
	var result RunResult

	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}

	ids, err := lister.PendingMatchIDs(ctx, maxMatches)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	result.MatchesFound = len(ids)
	if len(ids) == 0 {
		logger.Info("No pending matches to approve")
		result.Duration = time.Since(start)
		return result
	}
	logger.Info("Found pending matches", "count", len(ids))

	// Worker pool: one channel of match ids, N workers
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, len(ids))

	ch := make(chan int64, len(ids))
	for _, id := range ids {
		ch <- id
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ch {
				r := approveOne(ctx, approver, actor, id)

				mu.Lock()
				result.Results = append(result.Results, r)
				result.MatchesProcessed++
				switch {
				case r.Success:
					result.MatchesApproved++
					result.PlayersUpdated += r.Players
				case r.Skipped:
					result.MatchesSkipped++
				default:
					result.MatchesFailed++
					result.Errors = append(result.Errors, fmt.Sprintf("match %d: %s", id, r.Error))
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].MatchID < result.Results[j].MatchID
	})
	result.Duration = time.Since(start)

	logger.Info("Bulk approval complete", "summary", result.Summary())
	return result
}

func approveOne(ctx context.Context, approver Approver, actor scoring.Actor, matchID int64) Result {
	start := time.Now()
	r := Result{MatchID: matchID}

	a, err := approver.ApproveMatch(ctx, matchID, actor)
	r.Duration = time.Since(start)
	switch {
	case err == nil:
		r.Success = true
		r.Players = len(a.Deltas)
	case errors.Is(err, scoring.ErrNoData):
		r.Skipped = true
	default:
		r.Error = err.Error()
	}
	return r
}
