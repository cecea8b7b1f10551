package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Field types
//
// Absent and null fields decode to their zero value. Numbers may arrive as
// JSON numbers or numeric strings (form posts); anything else is rejected.
// --------------------------------------------------------------------------

// MaxCount bounds counts and decimals to the range of the INTEGER columns
// they are stored in.
const MaxCount = math.MaxInt32

// Count is a non-negative whole number.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	f, ok, err := parseNumber(b)
	if err != nil || !ok {
		*c = 0
		return err
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%w: %s is not a whole number", ErrValidation, b)
	}
	if f < 0 {
		return fmt.Errorf("%w: %s is negative", ErrValidation, b)
	}
	if f > MaxCount {
		return fmt.Errorf("%w: %s is out of range", ErrValidation, b)
	}
	*c = Count(f)
	return nil
}

// Decimal is a non-negative number such as overs bowled (4.3).
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	f, ok, err := parseNumber(b)
	if err != nil || !ok {
		*d = 0
		return err
	}
	if f < 0 {
		return fmt.Errorf("%w: %s is negative", ErrValidation, b)
	}
	if f > MaxCount {
		return fmt.Errorf("%w: %s is out of range", ErrValidation, b)
	}
	*d = Decimal(f)
	return nil
}

// Flag is a boolean that also accepts 0/1 and their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch raw {
	case "null", `""`, "false", "0", `"false"`, `"0"`:
		*f = false
	case "true", "1", `"true"`, `"1"`:
		*f = true
	default:
		return fmt.Errorf("%w: %s is not a boolean", ErrValidation, b)
	}
	return nil
}

// parseNumber decodes a JSON number or numeric string. ok is false for
// null or an empty string.
func parseNumber(b []byte) (float64, bool, error) {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false, nil
	}
	s := string(raw)
	if raw[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s", ErrValidation, b)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			return 0, false, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("%w: %s is not a number", ErrValidation, b)
	}
	return f, true, nil
}

// --------------------------------------------------------------------------
// Manual score payload
// --------------------------------------------------------------------------

// ManualPayload is the full manual-scoring state for one match.
type ManualPayload struct {
	Batting  []BattingEntry   `json:"batting"`
	Bowling  []BowlingEntry   `json:"bowling"`
	Fielding []FieldingEntry  `json:"fielding"`
	Wagon    []WagonEntry     `json:"wagon"`
	Opponent *OpponentSummary `json:"opponent_simple"`
	Team     *TeamSummary     `json:"team_summary"`
}

type BattingEntry struct {
	PlayerID      *int64 `json:"player_id"`
	Runs          Count  `json:"runs"`
	Balls         Count  `json:"balls"`
	Fours         Count  `json:"fours"`
	Sixes         Count  `json:"sixes"`
	IsOut         Flag   `json:"is_out"`
	WicketOver    *Count `json:"wicket_over"`
	WicketBall    *Count `json:"wicket_ball"`
	DismissalType string `json:"dismissal_type"`
}

type BowlingEntry struct {
	PlayerID     *int64  `json:"player_id"`
	Overs        Decimal `json:"overs"`
	RunsConceded Count   `json:"runs_conceded"`
	Wickets      Count   `json:"wickets"`
}

type FieldingEntry struct {
	PlayerID *int64 `json:"player_id"`
	Catches  Count  `json:"catches"`
	Drops    Count  `json:"drops"`
	Saves    Count  `json:"saves"`
}

type WagonEntry struct {
	PlayerID *int64 `json:"player_id"`
	Angle    *Count `json:"angle"`
	Distance Count  `json:"distance"`
	Runs     Count  `json:"runs"`
	ShotType string `json:"shot_type"`
}

// OpponentSummary is the opponent innings total.
type OpponentSummary struct {
	Runs    Count   `json:"runs"`
	Wickets Count   `json:"wickets"`
	Overs   Decimal `json:"overs"`
}

// TeamSummary is the club innings total plus the free-text result.
type TeamSummary struct {
	Runs   Count   `json:"runs"`
	Wkts   Count   `json:"wkts"`
	Overs  Decimal `json:"overs"`
	Result string  `json:"result"`
}

// DecodeManualPayload parses a manual submission body. All type and range
// problems are reported as ErrValidation.
func DecodeManualPayload(body []byte) (*ManualPayload, error) {
	var p ManualPayload
	if len(bytes.TrimSpace(body)) == 0 {
		return &p, nil
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, asValidation(err)
	}
	return &p, nil
}

// Rows expands the payload into storage rows: one row per list entry, in
// batting, bowling, fielding, opponent order.
func (p *ManualPayload) Rows(matchID int64) ([]ManualScoreRow, []WagonShot) {
	rows := make([]ManualScoreRow, 0, len(p.Batting)+len(p.Bowling)+len(p.Fielding)+1)

	for _, b := range p.Batting {
		rows = append(rows, ManualScoreRow{
			MatchID:       matchID,
			PlayerID:      b.PlayerID,
			Runs:          int(b.Runs),
			BallsFaced:    int(b.Balls),
			Fours:         int(b.Fours),
			Sixes:         int(b.Sixes),
			IsOut:         bool(b.IsOut),
			WicketOver:    countPtr(b.WicketOver),
			WicketBall:    countPtr(b.WicketBall),
			DismissalType: strings.TrimSpace(b.DismissalType),
		})
	}
	for _, b := range p.Bowling {
		rows = append(rows, ManualScoreRow{
			MatchID:      matchID,
			PlayerID:     b.PlayerID,
			Overs:        float64(b.Overs),
			RunsConceded: int(b.RunsConceded),
			Wickets:      int(b.Wickets),
		})
	}
	for _, f := range p.Fielding {
		rows = append(rows, ManualScoreRow{
			MatchID:  matchID,
			PlayerID: f.PlayerID,
			Catches:  int(f.Catches),
			Drops:    int(f.Drops),
			Saves:    int(f.Saves),
		})
	}
	if op := p.Opponent; op != nil {
		rows = append(rows, ManualScoreRow{
			MatchID:    matchID,
			Runs:       int(op.Runs),
			Wickets:    int(op.Wickets),
			Overs:      float64(op.Overs),
			IsOpponent: true,
		})
	}

	shots := make([]WagonShot, 0, len(p.Wagon))
	for _, w := range p.Wagon {
		shots = append(shots, WagonShot{
			MatchID:  matchID,
			PlayerID: w.PlayerID,
			Angle:    countPtr(w.Angle),
			Distance: int(w.Distance),
			Runs:     int(w.Runs),
			ShotType: strings.TrimSpace(w.ShotType),
		})
	}
	return rows, shots
}

// --------------------------------------------------------------------------
// Live ball payload
// --------------------------------------------------------------------------

// BallEvent is a single delivery submitted by the live scorer.
type BallEvent struct {
	OverNo     *Count `json:"over_no"`
	BallNo     *Count `json:"ball_no"`
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`
	Runs       Count  `json:"runs"`
	Extras     string `json:"extras"`
	Wicket     string `json:"wicket"`
	Commentary string `json:"commentary"`
	Angle      *Count `json:"angle"`
	ShotType   string `json:"shot_type"`
}

// DecodeBallEvent parses a live ball body.
func DecodeBallEvent(body []byte) (*BallEvent, error) {
	var e BallEvent
	if len(bytes.TrimSpace(body)) == 0 {
		return &e, nil
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, asValidation(err)
	}
	return &e, nil
}

// Ball builds the stored row, applying defaults: over 1, ball 1, extras and
// wicket "none".
func (e *BallEvent) Ball(matchID int64) LiveBall {
	return LiveBall{
		MatchID:    matchID,
		OverNo:     countOr(e.OverNo, 1),
		BallNo:     countOr(e.BallNo, 1),
		Striker:    strings.TrimSpace(e.Striker),
		NonStriker: strings.TrimSpace(e.NonStriker),
		Bowler:     strings.TrimSpace(e.Bowler),
		Runs:       int(e.Runs),
		Extras:     stringOr(e.Extras, "none"),
		Wicket:     stringOr(e.Wicket, "none"),
		Commentary: e.Commentary,
		Angle:      countPtr(e.Angle),
		ShotType:   strings.TrimSpace(e.ShotType),
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func asValidation(err error) error {
	if isDomain(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func countPtr(c *Count) *int {
	if c == nil {
		return nil
	}
	v := int(*c)
	return &v
}

func countOr(c *Count, fallback int) int {
	if c == nil {
		return fallback
	}
	return int(*c)
}

func stringOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// FormatOvers renders an overs figure the way match summaries store it
// ("12.3", "20.0").
func FormatOvers(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseOvers reads a stored overs string, treating anything unparsable as 0.
func ParseOvers(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
