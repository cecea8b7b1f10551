package scoring_test

import (
	"errors"
	"testing"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

func TestDecodeManualPayload_Defaults(t *testing.T) {
	p := mustDecode(t, `{
		"batting": [{"player_id": 1, "runs": "42", "balls": 30}],
		"bowling": [{"player_id": 1, "overs": "3.4", "wickets": 1}],
		"fielding": [{"player_id": 2}]
	}`)

	rows, shots := p.Rows(9)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if len(shots) != 0 {
		t.Errorf("len(shots) = %d, want 0", len(shots))
	}

	bat := rows[0]
	if bat.MatchID != 9 || bat.Runs != 42 || bat.BallsFaced != 30 {
		t.Errorf("batting row = %+v", bat)
	}
	if bat.Fours != 0 || bat.Sixes != 0 || bat.IsOut {
		t.Errorf("batting defaults = %+v, want zero fours/sixes and not out", bat)
	}
	if bat.WicketOver != nil {
		t.Errorf("WicketOver = %v, want nil", *bat.WicketOver)
	}

	if got := rows[1].Overs; got != 3.4 {
		t.Errorf("bowling overs = %v, want 3.4", got)
	}
	if rows[1].Runs != 0 || rows[1].BallsFaced != 0 {
		t.Errorf("bowling row carries batting numbers: %+v", rows[1])
	}
	if f := rows[2]; f.Catches != 0 || f.Drops != 0 || f.Saves != 0 {
		t.Errorf("fielding defaults = %+v", f)
	}
}

func TestDecodeManualPayload_Flags(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`1`, true},
		{`"1"`, true},
		{`"true"`, true},
		{`false`, false},
		{`0`, false},
		{`null`, false},
		{`""`, false},
	}
	for _, tt := range tests {
		p := mustDecode(t, `{"batting":[{"player_id":1,"is_out":`+tt.raw+`}]}`)
		rows, _ := p.Rows(1)
		if rows[0].IsOut != tt.want {
			t.Errorf("is_out %s = %v, want %v", tt.raw, rows[0].IsOut, tt.want)
		}
	}
}

func TestDecodeManualPayload_Rejects(t *testing.T) {
	bodies := map[string]string{
		"non-numeric runs": `{"batting":[{"player_id":1,"runs":"lots"}]}`,
		"negative balls":   `{"batting":[{"player_id":1,"balls":-3}]}`,
		"fractional runs":  `{"batting":[{"player_id":1,"runs":4.5}]}`,
		"negative overs":   `{"bowling":[{"player_id":1,"overs":"-1"}]}`,
		"bad flag":         `{"batting":[{"player_id":1,"is_out":"maybe"}]}`,
		"runs overflow":    `{"batting":[{"player_id":1,"runs":1e19}]}`,
		"balls overflow":   `{"batting":[{"player_id":1,"balls":"9223372036854775808"}]}`,
		"runs above int32": `{"batting":[{"player_id":1,"runs":2147483648}]}`,
		"overs overflow":   `{"bowling":[{"player_id":1,"overs":1e300}]}`,
		"bad list":         `{"batting":{"player_id":1}}`,
		"not json":         `runs=4`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := scoring.DecodeManualPayload([]byte(body))
			if !errors.Is(err, scoring.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestManualPayload_RowsOrderAndOpponent(t *testing.T) {
	p := mustDecode(t, `{
		"fielding": [{"player_id": 3, "catches": 1}],
		"batting": [{"player_id": 3, "runs": 10, "balls": 8}],
		"bowling": [{"player_id": 3, "overs": 2}],
		"wagon": [{"player_id": 3, "angle": 45, "distance": 60, "runs": 4, "shot_type": " drive "}],
		"opponent_simple": {"runs": 120, "wickets": 7, "overs": 20}
	}`)

	rows, shots := p.Rows(5)
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if rows[0].Runs != 10 || rows[1].Overs != 2 || rows[2].Catches != 1 {
		t.Errorf("rows not in batting, bowling, fielding order: %+v", rows)
	}
	opp := rows[3]
	if !opp.IsOpponent || opp.PlayerID != nil {
		t.Errorf("opponent row = %+v, want opponent without player", opp)
	}
	if opp.Runs != 120 || opp.Wickets != 7 || opp.Overs != 20 {
		t.Errorf("opponent totals = %d/%d in %v", opp.Runs, opp.Wickets, opp.Overs)
	}

	if len(shots) != 1 {
		t.Fatalf("len(shots) = %d, want 1", len(shots))
	}
	if shots[0].Angle == nil || *shots[0].Angle != 45 || shots[0].ShotType != "drive" {
		t.Errorf("shot = %+v", shots[0])
	}
}

func TestBallEvent_Defaults(t *testing.T) {
	e, err := scoring.DecodeBallEvent([]byte(`{"striker":"Ravi","bowler":"Sam","runs":"2"}`))
	if err != nil {
		t.Fatalf("DecodeBallEvent() error = %v", err)
	}
	b := e.Ball(4)
	if b.OverNo != 1 || b.BallNo != 1 {
		t.Errorf("pointer = (%d, %d), want (1, 1)", b.OverNo, b.BallNo)
	}
	if b.Extras != "none" || b.Wicket != "none" {
		t.Errorf("extras/wicket = %q/%q, want none/none", b.Extras, b.Wicket)
	}
	if b.Runs != 2 || b.MatchID != 4 || b.Striker != "Ravi" {
		t.Errorf("ball = %+v", b)
	}
}

func TestBallEvent_RejectsNonNumericRuns(t *testing.T) {
	_, err := scoring.DecodeBallEvent([]byte(`{"runs":"four"}`))
	if !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestFormatOvers(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{20, "20.0"},
		{12.3, "12.3"},
	}
	for _, tt := range tests {
		if got := scoring.FormatOvers(tt.in); got != tt.want {
			t.Errorf("FormatOvers(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := scoring.ParseOvers("junk"); got != 0 {
		t.Errorf("ParseOvers(junk) = %v, want 0", got)
	}
}
