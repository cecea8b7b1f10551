package scoring

import (
	"context"
	"time"
)

// EventType identifies a committed match change.
type EventType string

const (
	EventBallAdded      EventType = "ball_added"
	EventScoreSubmitted EventType = "score_submitted"
	EventMatchApproved  EventType = "match_approved"
	EventInningsChanged EventType = "innings_changed"
)

// Event describes a change that has already been committed. Publishers
// receive it after the transaction, so delivery is best-effort and never
// affects the stored state.
type Event struct {
	Type       EventType `json:"type"`
	MatchID    int64     `json:"match_id"`
	Status     Status    `json:"status,omitempty"`
	Ball       *LiveBall `json:"ball,omitempty"`
	Approval   *Approval `json:"approval,omitempty"`
	Innings    int       `json:"innings,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher receives committed events.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Publishers fans one event out to several publishers in order.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, e Event) {
	for _, p := range ps {
		if p != nil {
			p.Publish(ctx, e)
		}
	}
}

type discard struct{}

func (discard) Publish(context.Context, Event) {}
