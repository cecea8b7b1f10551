package scoring

import (
	"context"
	"fmt"
)

// SubmitManualScore replaces the match's entire manual scoring state with
// the payload and moves the match to pending_approval. The payload is the
// complete state, not a delta: every earlier manual row and wagon-wheel shot
// for the match is removed in the same transaction.
func (s *Service) SubmitManualScore(ctx context.Context, matchID int64, actor Actor, p *ManualPayload) error {
	if p == nil {
		return fmt.Errorf("%w: empty payload", ErrValidation)
	}
	rows, shots := p.Rows(matchID)

	err := s.inMatchTx(ctx, "submit_manual_score", matchID, func(tx Tx, m *Match) error {
		if !CanScore(m, actor) {
			return ErrNotAllowed
		}
		if m.Status == StatusCompleted {
			return fmt.Errorf("%w: match %d is already completed", ErrInvalidState, matchID)
		}

		if err := tx.DeleteManualScores(ctx, matchID); err != nil {
			return fmt.Errorf("delete manual scores: %w", err)
		}
		if err := tx.DeleteWagonShots(ctx, matchID); err != nil {
			return fmt.Errorf("delete wagon shots: %w", err)
		}
		if err := tx.InsertManualScores(ctx, rows); err != nil {
			return fmt.Errorf("insert manual scores: %w", err)
		}
		if err := tx.InsertWagonShots(ctx, shots); err != nil {
			return fmt.Errorf("insert wagon shots: %w", err)
		}

		// The opponent total is kept both as a row and on the match itself.
		if op := p.Opponent; op != nil {
			m.OppRuns = int(op.Runs)
			m.OppWkts = int(op.Wickets)
			m.OppOvers = FormatOvers(float64(op.Overs))
		}
		if ts := p.Team; ts != nil {
			m.TeamRuns = int(ts.Runs)
			m.TeamWkts = int(ts.Wkts)
			m.TeamOvers = FormatOvers(float64(ts.Overs))
			m.Result = ts.Result
		}
		m.Status = StatusPendingApproval

		if err := tx.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Manual score submitted",
		"match_id", matchID, "rows", len(rows), "wagon_shots", len(shots))
	s.publish(ctx, Event{Type: EventScoreSubmitted, MatchID: matchID, Status: StatusPendingApproval})
	return nil
}

// AppendLiveBall records one delivery. Balls are never replaced, and the
// caller-supplied over/ball numbers are trusted as given.
func (s *Service) AppendLiveBall(ctx context.Context, matchID int64, actor Actor, e *BallEvent) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("%w: empty ball", ErrValidation)
	}
	ball := e.Ball(matchID)

	err := s.inMatchTx(ctx, "append_live_ball", matchID, func(tx Tx, m *Match) error {
		if !CanScore(m, actor) {
			return ErrNotAllowed
		}
		if m.Status == StatusCompleted {
			return fmt.Errorf("%w: match %d is already completed", ErrInvalidState, matchID)
		}
		ball.CreatedAt = s.now().UTC()
		id, err := tx.InsertLiveBall(ctx, &ball)
		if err != nil {
			return fmt.Errorf("insert live ball: %w", err)
		}
		ball.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, Event{Type: EventBallAdded, MatchID: matchID, Ball: &ball})
	return ball.ID, nil
}

// NextBallPointer suggests the next (over, ball) from the most recent ball:
// ball 6 rolls over to the next over, anything else increments the ball.
// A match without balls starts at (1, 1).
func (s *Service) NextBallPointer(ctx context.Context, matchID int64) (BallPointer, error) {
	if _, err := s.store.GetMatch(ctx, matchID); err != nil {
		return BallPointer{}, s.surface("next_ball_pointer", matchID, err)
	}
	last, err := s.store.LastLiveBall(ctx, matchID)
	if err != nil {
		return BallPointer{}, s.surface("next_ball_pointer", matchID, err)
	}
	return NextBall(last), nil
}

// NextBall derives the pointer that follows last.
func NextBall(last *LiveBall) BallPointer {
	if last == nil {
		return BallPointer{Over: 1, Ball: 1}
	}
	if last.BallNo == 6 {
		return BallPointer{Over: last.OverNo + 1, Ball: 1}
	}
	return BallPointer{Over: last.OverNo, Ball: last.BallNo + 1}
}

// ListBalls returns the match's ball history in delivery order.
func (s *Service) ListBalls(ctx context.Context, matchID int64) ([]LiveBall, error) {
	if _, err := s.store.GetMatch(ctx, matchID); err != nil {
		return nil, s.surface("list_balls", matchID, err)
	}
	balls, err := s.store.ListLiveBalls(ctx, matchID)
	if err != nil {
		return nil, s.surface("list_balls", matchID, err)
	}
	return balls, nil
}
