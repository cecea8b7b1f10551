// Package availability runs pre-match availability polls. A coach opens a
// poll for an upcoming fixture, players answer available, unavailable or
// later, and finalizing the poll turns the available players into the
// linked match's squad.
package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// MaxLater is how many times a player may defer their answer.
const MaxLater = 3

// Status is a player's answer to a poll.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusLater       Status = "later"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusLater:
		return true
	}
	return false
}

// Poll is one availability round for a fixture.
type Poll struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	MatchDate time.Time `json:"match_date"`
	Venue     string    `json:"venue"`
	MatchFee  float64   `json:"match_fee"`
	MatchID   *int64    `json:"match_id,omitempty"`
	CreatedBy int64     `json:"created_by"`
	Finalized bool      `json:"finalized"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPoll is the coach's input for opening a poll.
type NewPoll struct {
	Title     string  `json:"title"`
	MatchDate string  `json:"match_date"` // YYYY-MM-DD
	Venue     string  `json:"venue"`
	MatchFee  float64 `json:"match_fee"`
	MatchID   *int64  `json:"match_id"`
}

// Response is a player's current answer.
type Response struct {
	PollID     int64     `json:"poll_id"`
	PlayerID   int64     `json:"player_id"`
	PlayerName string    `json:"player_name,omitempty"`
	Status     Status    `json:"status"`
	LaterCount int       `json:"later_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary is the coach's view of a poll.
type Summary struct {
	Poll        Poll       `json:"poll"`
	Available   int        `json:"available"`
	Unavailable int        `json:"unavailable"`
	Later       int        `json:"later"`
	Responses   []Response `json:"responses"`
}

// Finalize carries the opponent list kept with the squad when the poll is
// linked to a match.
type Finalize struct {
	Opponents []scoring.OpponentPlayer `json:"opponents"`
}

func (in NewPoll) build(coachID int64, now time.Time) (*Poll, error) {
	title := strings.TrimSpace(in.Title)
	venue := strings.TrimSpace(in.Venue)
	if title == "" || venue == "" {
		return nil, fmt.Errorf("%w: title and venue are required", scoring.ErrValidation)
	}
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(in.MatchDate))
	if err != nil {
		return nil, fmt.Errorf("%w: match_date must be YYYY-MM-DD", scoring.ErrValidation)
	}
	if in.MatchFee < 0 || in.MatchFee > scoring.MaxCount {
		return nil, fmt.Errorf("%w: match_fee out of range", scoring.ErrValidation)
	}
	return &Poll{
		Title:     title,
		MatchDate: date,
		Venue:     venue,
		MatchFee:  in.MatchFee,
		MatchID:   in.MatchID,
		CreatedBy: coachID,
		CreatedAt: now,
	}, nil
}

// Answer applies status to r. Answers close once the poll is finalized, and
// a player may answer later at most MaxLater times.
func Answer(p *Poll, r *Response, status Status, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status must be available, unavailable or later", scoring.ErrValidation)
	}
	if p.Finalized {
		return fmt.Errorf("%w: poll %d is finalized", scoring.ErrInvalidState, p.ID)
	}
	if status == StatusLater {
		if r.LaterCount >= MaxLater {
			return fmt.Errorf("%w: later limit of %d reached", scoring.ErrInvalidState, MaxLater)
		}
		r.LaterCount++
	}
	r.Status = status
	r.UpdatedAt = now
	return nil
}

// Tally counts responses per status. Responses are ordered by player name.
func Tally(p Poll, responses []Response) Summary {
	s := Summary{Poll: p, Responses: append([]Response{}, responses...)}
	for _, r := range responses {
		switch r.Status {
		case StatusAvailable:
			s.Available++
		case StatusUnavailable:
			s.Unavailable++
		case StatusLater:
			s.Later++
		}
	}
	sort.SliceStable(s.Responses, func(i, j int) bool {
		return s.Responses[i].PlayerName < s.Responses[j].PlayerName
	})
	return s
}

// AvailablePlayers returns the ids of players who answered available.
func (s Summary) AvailablePlayers() []int64 {
	var ids []int64
	for _, r := range s.Responses {
		if r.Status == StatusAvailable {
			ids = append(ids, r.PlayerID)
		}
	}
	return ids
}
