package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

const (
	titleOpened    = "Availability poll"
	titleFinalized = "Squad confirmed"
)

// Store persists polls and responses.
type Store interface {
	CreatePoll(ctx context.Context, p *Poll) (int64, error)
	GetPoll(ctx context.Context, pollID int64) (*Poll, error)
	// UpdateResponse locks the poll, loads the player's response (zero value
	// when none), lets fn modify it and saves it, all in one transaction.
	UpdateResponse(ctx context.Context, pollID, playerID int64, fn func(p *Poll, r *Response) error) (*Response, error)
	Responses(ctx context.Context, pollID int64) ([]Response, error)
	// MarkFinalized flips the poll to finalized. It reports false when the
	// poll was already finalized.
	MarkFinalized(ctx context.Context, pollID int64) (bool, error)
	ApprovedPlayerIDs(ctx context.Context) ([]int64, error)
}

// SquadSelector replaces a match's squad.
type SquadSelector interface {
	SelectSquad(ctx context.Context, matchID int64, actor scoring.Actor, sq scoring.Squad) error
}

// Service runs availability polls.
type Service struct {
	store  Store
	squads SquadSelector
	inbox  notifications.Writer
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service. squads and inbox may be nil.
func NewService(store Store, squads SquadSelector, inbox notifications.Writer, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		squads: squads,
		inbox:  inbox,
		logger: logger,
		now:    time.Now,
	}
}

// CreatePoll opens a poll and tells every approved player about it.
func (s *Service) CreatePoll(ctx context.Context, a scoring.Actor, in NewPoll) (*Poll, error) {
	if !a.IsCoach() || a.CoachID == nil {
		return nil, scoring.ErrNotCoach
	}
	p, err := in.build(*a.CoachID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	id, err := s.store.CreatePoll(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}
	p.ID = id

	players, err := s.store.ApprovedPlayerIDs(ctx)
	if err != nil {
		s.logger.Warn("Load players for poll notice failed", "poll_id", id, "error", err)
		return p, nil
	}
	msg := fmt.Sprintf("Are you available for %s on %s at %s?",
		p.Title, p.MatchDate.Format(time.DateOnly), p.Venue)
	s.notify(ctx, p, players, titleOpened, msg)
	return p, nil
}

// Respond records the acting player's answer.
func (s *Service) Respond(ctx context.Context, pollID int64, a scoring.Actor, status Status) (*Response, error) {
	if a.PlayerID == nil {
		return nil, scoring.ErrNotAllowed
	}
	now := s.now().UTC()
	return s.store.UpdateResponse(ctx, pollID, *a.PlayerID, func(p *Poll, r *Response) error {
		return Answer(p, r, status, now)
	})
}

// Summary returns the poll with its responses. Coach only.
func (s *Service) Summary(ctx context.Context, pollID int64, a scoring.Actor) (*Summary, error) {
	if !a.IsCoach() {
		return nil, scoring.ErrNotCoach
	}
	return s.summary(ctx, pollID)
}

// Finalize closes the poll. When the poll is linked to a match, the available
// players become its squad first; a squad the match rejects leaves the poll
// open. Available players are then notified.
func (s *Service) Finalize(ctx context.Context, pollID int64, a scoring.Actor, f Finalize) (*Summary, error) {
	if !a.IsCoach() {
		return nil, scoring.ErrNotCoach
	}
	sum, err := s.summary(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if sum.Poll.Finalized {
		return nil, fmt.Errorf("%w: poll %d is finalized", scoring.ErrInvalidState, pollID)
	}

	available := sum.AvailablePlayers()
	if sum.Poll.MatchID != nil && s.squads != nil {
		sq := scoring.Squad{PlayerIDs: available, Opponents: f.Opponents}
		if err := s.squads.SelectSquad(ctx, *sum.Poll.MatchID, a, sq); err != nil {
			return nil, err
		}
	}

	changed, err := s.store.MarkFinalized(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("finalize poll: %w", err)
	}
	if !changed {
		return nil, fmt.Errorf("%w: poll %d is finalized", scoring.ErrInvalidState, pollID)
	}
	sum.Poll.Finalized = true

	msg := fmt.Sprintf("You are in the squad for %s on %s.",
		sum.Poll.Title, sum.Poll.MatchDate.Format(time.DateOnly))
	if sum.Poll.MatchFee > 0 {
		msg += fmt.Sprintf(" Match fee: %.2f.", sum.Poll.MatchFee)
	}
	s.notify(ctx, &sum.Poll, available, titleFinalized, msg)
	return sum, nil
}

func (s *Service) summary(ctx context.Context, pollID int64) (*Summary, error) {
	p, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.Responses(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	sum := Tally(*p, responses)
	return &sum, nil
}

// notify writes one notification per player. Failures are logged only.
func (s *Service) notify(ctx context.Context, p *Poll, players []int64, title, msg string) {
	if s.inbox == nil || len(players) == 0 {
		return
	}
	ns := make([]notifications.Notification, 0, len(players))
	for _, id := range players {
		ns = append(ns, notifications.Notification{
			PlayerID: id,
			MatchID:  p.MatchID,
			Title:    title,
			Message:  msg,
		})
	}
	if _, err := s.inbox.Insert(ctx, ns); err != nil {
		s.logger.Warn("Availability notifications failed", "poll_id", p.ID, "error", err)
	}
}
