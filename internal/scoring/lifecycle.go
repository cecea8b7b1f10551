package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MinSquadSize is the smallest playing squad a coach may select.
const MinSquadSize = 11

// NewMatch is the input for creating a match.
type NewMatch struct {
	Title          string      `json:"title"`
	MatchDate      *time.Time  `json:"match_date"`
	Format         string      `json:"format"`
	Venue          string      `json:"venue"`
	ScoringMode    ScoringMode `json:"scoring_mode"`
	TeamName       string      `json:"team_name"`
	OpponentName   string      `json:"opponent_name"`
	TossWinner     string      `json:"toss_winner"`
	TossDecision   string      `json:"toss_decision"`
	ScorerType     Role        `json:"scorer_type"`
	ScorerPlayerID *int64      `json:"scorer_player_id"`
}

func (n *NewMatch) validate() error {
	var missing []string
	if strings.TrimSpace(n.TeamName) == "" {
		missing = append(missing, "team_name")
	}
	if strings.TrimSpace(n.OpponentName) == "" {
		missing = append(missing, "opponent_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	switch n.ScoringMode {
	case ModeLive, ModeManual, ModeMixed:
	case "":
		n.ScoringMode = ModeManual
	default:
		return fmt.Errorf("%w: unknown scoring_mode %q", ErrValidation, n.ScoringMode)
	}
	switch n.TossDecision {
	case "", "bat", "bowl":
	default:
		return fmt.Errorf("%w: toss_decision must be bat or bowl", ErrValidation)
	}
	return nil
}

// BattingSideFromToss returns which side bats first given the toss.
func BattingSideFromToss(teamName, tossWinner, decision string) string {
	if tossWinner == teamName {
		if decision == "bat" {
			return SideTeam
		}
		return SideOpponent
	}
	if decision == "bat" {
		return SideOpponent
	}
	return SideTeam
}

// CreateMatch creates an ongoing match in innings 1. The scorer is either
// the creating coach or the chosen player.
func (s *Service) CreateMatch(ctx context.Context, actor Actor, in NewMatch) (*Match, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &Match{
		Title:          in.Title,
		MatchDate:      in.MatchDate,
		Format:         in.Format,
		Venue:          in.Venue,
		ScoringMode:    in.ScoringMode,
		TeamName:       in.TeamName,
		OpponentName:   in.OpponentName,
		Status:         StatusOngoing,
		TossWinner:     in.TossWinner,
		TossDecision:   in.TossDecision,
		CurrentInnings: 1,
		BattingSide:    BattingSideFromToss(in.TeamName, in.TossWinner, in.TossDecision),
		TeamOvers:      FormatOvers(0),
		OppOvers:       FormatOvers(0),
	}
	if in.ScorerType == RolePlayer {
		if in.ScorerPlayerID != nil && *in.ScorerPlayerID != 0 {
			m.ScorerPlayerID = in.ScorerPlayerID
		}
	} else {
		m.ScorerCoachID = actor.CoachID
	}

	err := s.store.WithTx(ctx, func(tx Tx) error {
		id, err := tx.InsertMatch(ctx, m)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		m.ID = id
		return nil
	})
	if err != nil {
		return nil, s.surface("create_match", 0, err)
	}

	s.logger.Info("Match created", "match_id", m.ID, "batting_side", m.BattingSide)
	return m, nil
}

// GetMatch returns a match by id.
func (s *Service) GetMatch(ctx context.Context, matchID int64) (*Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, s.surface("get_match", matchID, err)
	}
	return m, nil
}

// StartInnings advances current_innings by one, clamped at 2, and stamps the
// batting side and start time. Calls past innings 2 only re-stamp.
func (s *Service) StartInnings(ctx context.Context, matchID int64, actor Actor, battingSide string) (*Match, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}
	switch battingSide {
	case "", SideTeam, SideOpponent:
	default:
		return nil, fmt.Errorf("%w: batting_side must be team or opponent", ErrValidation)
	}

	var out *Match
	err := s.inMatchTx(ctx, "start_innings", matchID, func(tx Tx, m *Match) error {
		if m.CurrentInnings != 1 && m.CurrentInnings != 2 {
			m.CurrentInnings = 1
		} else {
			m.CurrentInnings = min(2, m.CurrentInnings+1)
		}
		if battingSide != "" {
			m.BattingSide = battingSide
		}
		now := s.now().UTC()
		m.StartedAt = &now
		out = m
		return tx.UpdateMatch(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventInningsChanged, MatchID: matchID, Innings: out.CurrentInnings})
	return out, nil
}

// EndInnings stamps the completion time. It does not change match status.
func (s *Service) EndInnings(ctx context.Context, matchID int64, actor Actor) (*Match, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}

	var out *Match
	err := s.inMatchTx(ctx, "end_innings", matchID, func(tx Tx, m *Match) error {
		now := s.now().UTC()
		m.CompletedAt = &now
		out = m
		return tx.UpdateMatch(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventInningsChanged, MatchID: matchID, Innings: out.CurrentInnings})
	return out, nil
}

// UpdateResult overrides the free-text result of a match that is not yet
// completed.
func (s *Service) UpdateResult(ctx context.Context, matchID int64, actor Actor, result string) error {
	if err := requireCoach(actor); err != nil {
		return err
	}
	return s.inMatchTx(ctx, "update_result", matchID, func(tx Tx, m *Match) error {
		if m.Status == StatusCompleted {
			return fmt.Errorf("%w: match %d is already completed", ErrInvalidState, matchID)
		}
		m.Result = strings.TrimSpace(result)
		return tx.UpdateMatch(ctx, m)
	})
}

// Squad is a coach's squad selection for one match.
type Squad struct {
	PlayerIDs []int64          `json:"selected_players"`
	Opponents []OpponentPlayer `json:"opponents"`
}

// SelectSquad replaces the match's squad and opponent players. At least
// MinSquadSize distinct players are required; unnamed opponents are dropped.
func (s *Service) SelectSquad(ctx context.Context, matchID int64, actor Actor, sq Squad) error {
	if err := requireCoach(actor); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(sq.PlayerIDs))
	ids := make([]int64, 0, len(sq.PlayerIDs))
	for _, id := range sq.PlayerIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) < MinSquadSize {
		return fmt.Errorf("%w: select at least %d players", ErrValidation, MinSquadSize)
	}

	opponents := make([]OpponentPlayer, 0, len(sq.Opponents))
	for _, o := range sq.Opponents {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			continue
		}
		opponents = append(opponents, OpponentPlayer{MatchID: matchID, Name: name, Role: strings.TrimSpace(o.Role)})
	}

	return s.inMatchTx(ctx, "select_squad", matchID, func(tx Tx, m *Match) error {
		if m.Status == StatusCompleted {
			return fmt.Errorf("%w: match %d is already completed", ErrInvalidState, matchID)
		}
		return tx.ReplaceSquad(ctx, matchID, ids, opponents)
	})
}
