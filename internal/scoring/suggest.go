package scoring

// Coaching thresholds.
const (
	RunsExcellent  = 50
	RunsGood       = 30
	StrikeRateLow  = 60.0
	StrikeRateHigh = 120.0
	WicketsStrong  = 3
	EconomyHigh    = 7.5
	CatchesStrong  = 2
)

// Suggestion notes.
const (
	NoteBatExcellent   = "Excellent batting performance, continue building long innings."
	NoteBatGood        = "Good start, work on converting 30s into big scores."
	NoteBatWeak        = "Need stronger shot selection and rotation of strike."
	NoteStrikeLow      = "Low strike rate, improve running between wickets and placement."
	NoteStrikeHigh     = "Great aggressive intent, maintain controlled aggression."
	NoteBowlStrong     = "Strong wicket-taking performance, maintain consistency with variations."
	NoteBowlWicketless = "Focus on bowling tighter lines to create wicket opportunities."
	NoteEconomyHigh    = "Economy rate high, practice yorkers and slower balls."
	NoteEconomyGood    = "Good economical spell, maintain discipline."
	NoteCatchStrong    = "Good catching performance, work on reaction drills for run-outs."
	NoteCatchDrops     = "Needs catching improvement, drill high catches."
	NoteFieldReady     = "Improve anticipation and ready position while fielding."
)

// PlayerNumbers are one player's summed numbers for a match, the input to
// Suggest.
type PlayerNumbers struct {
	PlayerID     int64
	PlayerName   string
	Runs         int
	Balls        int
	Overs        float64
	RunsConceded int
	Wickets      int
	Catches      int
	Drops        int
	Saves        int
}

// Suggestion is the set of coaching notes for one player.
type Suggestion struct {
	PlayerID   int64    `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Notes      []string `json:"suggestions"`
}

// Suggest applies the fixed coaching thresholds to one player's numbers.
// Batting notes apply when the player faced a ball, bowling notes when they
// bowled, fielding notes when they took part in a fielding event.
func Suggest(p PlayerNumbers) []string {
	var notes []string

	if p.Balls > 0 {
		switch {
		case p.Runs >= RunsExcellent:
			notes = append(notes, NoteBatExcellent)
		case p.Runs >= RunsGood:
			notes = append(notes, NoteBatGood)
		default:
			notes = append(notes, NoteBatWeak)
		}
		sr := rate(p.Runs, float64(p.Balls)) * 100
		if sr < StrikeRateLow {
			notes = append(notes, NoteStrikeLow)
		} else if sr > StrikeRateHigh {
			notes = append(notes, NoteStrikeHigh)
		}
	}

	if p.Overs > 0 {
		switch {
		case p.Wickets >= WicketsStrong:
			notes = append(notes, NoteBowlStrong)
		case p.Wickets == 0:
			notes = append(notes, NoteBowlWicketless)
		}
		if rate(p.RunsConceded, p.Overs) > EconomyHigh {
			notes = append(notes, NoteEconomyHigh)
		} else {
			notes = append(notes, NoteEconomyGood)
		}
	}

	if p.Catches > 0 || p.Drops > 0 || p.Saves > 0 {
		switch {
		case p.Catches >= CatchesStrong:
			notes = append(notes, NoteCatchStrong)
		case p.Drops > 0:
			notes = append(notes, NoteCatchDrops)
		default:
			notes = append(notes, NoteFieldReady)
		}
	}

	return notes
}

// Suggestions groups rows by player and runs Suggest on each player's
// totals. Players without notes are omitted; order follows first appearance.
func Suggestions(rows []ManualScoreRow) []Suggestion {
	var order []int64
	byPlayer := make(map[int64]*PlayerNumbers)
	for _, r := range rows {
		if r.IsOpponent || r.PlayerID == nil {
			continue
		}
		p, ok := byPlayer[*r.PlayerID]
		if !ok {
			p = &PlayerNumbers{PlayerID: *r.PlayerID, PlayerName: displayName(r.PlayerName)}
			byPlayer[*r.PlayerID] = p
			order = append(order, *r.PlayerID)
		}
		p.Runs += r.Runs
		p.Balls += r.BallsFaced
		p.Overs += r.Overs
		p.RunsConceded += r.RunsConceded
		p.Wickets += r.Wickets
		p.Catches += r.Catches
		p.Drops += r.Drops
		p.Saves += r.Saves
	}

	out := make([]Suggestion, 0, len(order))
	for _, id := range order {
		p := byPlayer[id]
		if notes := Suggest(*p); len(notes) > 0 {
			out = append(out, Suggestion{PlayerID: id, PlayerName: p.PlayerName, Notes: notes})
		}
	}
	return out
}

func rate(n int, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d
}
