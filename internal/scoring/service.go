package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service runs the scoring operations against a Store. Every mutating
// operation is one transaction that begins by locking the match row.
type Service struct {
	store  Store
	events Publisher
	logger *slog.Logger
	now    func() time.Time
	topN   int
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher sets the receiver for committed events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithReportTopN sets the length of the report's top lists.
func WithReportTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// NewService creates a Service. Events are discarded unless a publisher is
// configured.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		events: discard{},
		logger: logger,
		now:    time.Now,
		topN:   DefaultTopN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inMatchTx runs fn inside a transaction holding the lock on matchID.
// Storage failures are logged and collapsed into ErrInternal; domain
// errors returned by fn pass through unchanged.
func (s *Service) inMatchTx(ctx context.Context, op string, matchID int64, fn func(tx Tx, m *Match) error) error {
	err := s.store.WithTx(ctx, func(tx Tx) error {
		m, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return err
		}
		return fn(tx, m)
	})
	return s.surface(op, matchID, err)
}

func (s *Service) surface(op string, matchID int64, err error) error {
	if err == nil || isDomain(err) {
		return err
	}
	s.logger.Error("Scoring operation failed",
		"op", op, "match_id", matchID, "error", err)
	return fmt.Errorf("%w: %s failed", ErrInternal, op)
}

func (s *Service) publish(ctx context.Context, e Event) {
	e.OccurredAt = s.now().UTC()
	s.events.Publish(ctx, e)
}

// --------------------------------------------------------------------------
// Permission gate
// --------------------------------------------------------------------------

// CanScore reports whether the actor is the match's designated scorer: the
// coach whose id equals the scorer coach id, or the player whose id equals
// the scorer player id.
func CanScore(m *Match, a Actor) bool {
	switch a.Role {
	case RoleCoach:
		return sameID(m.ScorerCoachID, a.CoachID)
	case RolePlayer:
		return sameID(m.ScorerPlayerID, a.PlayerID)
	}
	return false
}

func requireCoach(a Actor) error {
	if !a.IsCoach() {
		return ErrNotCoach
	}
	return nil
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
