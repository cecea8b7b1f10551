package scoring

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Placeholder rendered for absent values.
const Placeholder = "-"

// DefaultTopN is the size of the top batting, bowling and fielding lists.
const DefaultTopN = 3

// InningsSummary is one side's total.
type InningsSummary struct {
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Overs   float64 `json:"overs"`
}

type BattingLine struct {
	PlayerID   *int64 `json:"player_id,omitempty"`
	PlayerName string `json:"player_name"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	StrikeRate string `json:"strike_rate"`
	Dismissal  string `json:"dismissal_type"`
}

type BowlingLine struct {
	PlayerID     *int64  `json:"player_id,omitempty"`
	PlayerName   string  `json:"player_name"`
	Overs        float64 `json:"overs"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      string  `json:"economy"`
}

type FieldingLine struct {
	PlayerID   *int64 `json:"player_id,omitempty"`
	PlayerName string `json:"player_name"`
	Catches    int    `json:"catches"`
}

// FallOfWicket is the team score at a dismissal.
type FallOfWicket struct {
	Number     int    `json:"number"`
	Score      int    `json:"score"`
	Over       string `json:"over"`
	PlayerName string `json:"player_name"`
}

type WagonPoint struct {
	Angle    *int   `json:"angle,omitempty"`
	Distance int    `json:"distance"`
	Runs     int    `json:"runs"`
	ShotType string `json:"shot_type"`
}

// WagonLine groups one batter's shots.
type WagonLine struct {
	PlayerID   *int64       `json:"player_id,omitempty"`
	PlayerName string       `json:"player_name"`
	Shots      []WagonPoint `json:"shots"`
}

// Report is the read-only match report.
type Report struct {
	Match       *Match         `json:"match"`
	Result      string         `json:"result"`
	Our         InningsSummary `json:"our"`
	Opponent    InningsSummary `json:"opponent"`
	FullBatting []BattingLine  `json:"full_batting"`
	FullBowling []BowlingLine  `json:"full_bowling"`
	FallOfWkts  []FallOfWicket `json:"fow"`
	TopBatting  []BattingLine  `json:"top_batting"`
	TopBowling  []BowlingLine  `json:"top_bowling"`
	TopFielding []FieldingLine `json:"top_fielding"`
	Wagon       []WagonLine    `json:"wagon_list"`
	Suggestions []Suggestion   `json:"suggestions"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// BuildReport derives the report from a match and its stored rows. rows must
// be in storage order; opponent rows are skipped. It never fails: missing
// values render as zero or Placeholder. GeneratedAt is left for the caller.
func BuildReport(m *Match, rows []ManualScoreRow, shots []WagonShot, topN int) *Report {
	if topN <= 0 {
		topN = DefaultTopN
	}

	r := &Report{
		Match:       m,
		Result:      ResultText(m),
		Our:         InningsSummary{Runs: m.TeamRuns, Wickets: m.TeamWkts, Overs: ParseOvers(m.TeamOvers)},
		Opponent:    InningsSummary{Runs: m.OppRuns, Wickets: m.OppWkts, Overs: ParseOvers(m.OppOvers)},
		FullBatting: []BattingLine{},
		FullBowling: []BowlingLine{},
		FallOfWkts:  []FallOfWicket{},
		TopFielding: []FieldingLine{},
		Wagon:       []WagonLine{},
	}

	own := make([]ManualScoreRow, 0, len(rows))
	for _, row := range rows {
		if !row.IsOpponent {
			own = append(own, row)
		}
	}

	total := 0
	for _, row := range own {
		name := displayName(row.PlayerName)
		total += row.Runs

		if row.BallsFaced > 0 {
			dismissal := "Not Out"
			if row.IsOut {
				dismissal = orPlaceholder(row.DismissalType)
			}
			r.FullBatting = append(r.FullBatting, BattingLine{
				PlayerID:   row.PlayerID,
				PlayerName: name,
				Runs:       row.Runs,
				Balls:      row.BallsFaced,
				Fours:      row.Fours,
				Sixes:      row.Sixes,
				StrikeRate: ratio(float64(row.Runs)*100, float64(row.BallsFaced)),
				Dismissal:  dismissal,
			})
		}

		if row.IsOut {
			over := Placeholder
			if row.WicketOver != nil {
				over = strconv.Itoa(*row.WicketOver)
				if row.WicketBall != nil {
					over += "." + strconv.Itoa(*row.WicketBall)
				}
			}
			r.FallOfWkts = append(r.FallOfWkts, FallOfWicket{
				Number:     len(r.FallOfWkts) + 1,
				Score:      total,
				Over:       over,
				PlayerName: name,
			})
		}

		if row.Overs > 0 {
			r.FullBowling = append(r.FullBowling, BowlingLine{
				PlayerID:     row.PlayerID,
				PlayerName:   name,
				Overs:        row.Overs,
				RunsConceded: row.RunsConceded,
				Wickets:      row.Wickets,
				Economy:      ratio(float64(row.RunsConceded), row.Overs),
			})
		}

		if row.Catches > 0 {
			r.TopFielding = append(r.TopFielding, FieldingLine{
				PlayerID:   row.PlayerID,
				PlayerName: name,
				Catches:    row.Catches,
			})
		}
	}

	r.TopBatting = append([]BattingLine(nil), r.FullBatting...)
	sort.SliceStable(r.TopBatting, func(i, j int) bool { return r.TopBatting[i].Runs > r.TopBatting[j].Runs })
	r.TopBatting = r.TopBatting[:min(topN, len(r.TopBatting))]

	r.TopBowling = append([]BowlingLine(nil), r.FullBowling...)
	sort.SliceStable(r.TopBowling, func(i, j int) bool { return r.TopBowling[i].Wickets > r.TopBowling[j].Wickets })
	r.TopBowling = r.TopBowling[:min(topN, len(r.TopBowling))]

	sort.SliceStable(r.TopFielding, func(i, j int) bool { return r.TopFielding[i].Catches > r.TopFielding[j].Catches })
	r.TopFielding = r.TopFielding[:min(topN, len(r.TopFielding))]

	r.Wagon = wagonLines(shots)
	r.Suggestions = Suggestions(own)
	return r
}

// ResultText compares the two totals: the higher side wins by the run
// margin, equal totals tie.
func ResultText(m *Match) string {
	switch {
	case m.TeamRuns > m.OppRuns:
		return fmt.Sprintf("%s won by %d runs", m.TeamName, m.TeamRuns-m.OppRuns)
	case m.OppRuns > m.TeamRuns:
		return fmt.Sprintf("%s won by %d runs", m.OpponentName, m.OppRuns-m.TeamRuns)
	default:
		return "Match Tied"
	}
}

func wagonLines(shots []WagonShot) []WagonLine {
	lines := []WagonLine{}
	index := make(map[string]int)
	for _, s := range shots {
		key := Placeholder
		if s.PlayerID != nil {
			key = strconv.FormatInt(*s.PlayerID, 10)
		}
		if s.IsOpponent {
			key = "opp:" + key
		}
		i, ok := index[key]
		if !ok {
			i = len(lines)
			index[key] = i
			lines = append(lines, WagonLine{PlayerID: s.PlayerID, PlayerName: displayName(s.PlayerName)})
		}
		lines[i].Shots = append(lines[i].Shots, WagonPoint{
			Angle:    s.Angle,
			Distance: s.Distance,
			Runs:     s.Runs,
			ShotType: s.ShotType,
		})
	}
	return lines
}

// BuildMatchReport loads the match and its rows and builds the report.
func (s *Service) BuildMatchReport(ctx context.Context, matchID int64) (*Report, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, s.surface("build_match_report", matchID, err)
	}
	rows, err := s.store.ListManualScores(ctx, matchID, true)
	if err != nil {
		return nil, s.surface("build_match_report", matchID, err)
	}
	shots, err := s.store.ListWagonShots(ctx, matchID)
	if err != nil {
		return nil, s.surface("build_match_report", matchID, err)
	}

	r := BuildReport(m, rows, shots, s.topN)
	r.GeneratedAt = s.now().UTC()
	return r, nil
}

// ratio formats n/d to two decimals, or Placeholder when d is zero.
func ratio(n, d float64) string {
	if d <= 0 {
		return Placeholder
	}
	return strconv.FormatFloat(n/d, 'f', 2, 64)
}

func displayName(name string) string {
	return orPlaceholder(name)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
