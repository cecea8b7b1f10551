// Package store implements scoring.Store on Postgres with pgx.
//
// Reads outside a transaction go through the pool's prepared statements.
// Every write runs inside WithTx, which begins a transaction, hands the
// scoring service a Tx bound to it, and commits only if the callback returns
// nil. The match row lock is a plain SELECT ... FOR UPDATE.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

var (
	_ scoring.Store = (*Postgres)(nil)
	_ scoring.Tx    = (*pgTx)(nil)
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Postgres is the pgx-backed scoring store.
type Postgres struct {
	queries
	pool *pgxpool.Pool
}

// New wraps a pool whose connections have the db package's prepared
// statements registered.
func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{queries: queries{q: pool}, pool: pool}
}

// WithTx runs fn in a read-committed transaction. The deferred rollback is a
// no-op after a successful commit.
func (s *Postgres) WithTx(ctx context.Context, fn func(tx scoring.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{queries: queries{q: tx}}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------------

type queries struct {
	q querier
}

func (r queries) GetMatch(ctx context.Context, matchID int64) (*scoring.Match, error) {
	return scanMatch(r.q.QueryRow(ctx, "match_by_id", matchID), matchID)
}

func (r queries) ListManualScores(ctx context.Context, matchID int64, ownOnly bool) ([]scoring.ManualScoreRow, error) {
	rows, err := r.q.Query(ctx, "manual_scores_by_match", matchID, ownOnly)
	if err != nil {
		return nil, fmt.Errorf("query manual scores: %w", err)
	}
	defer rows.Close()

	var out []scoring.ManualScoreRow
	for rows.Next() {
		var ms scoring.ManualScoreRow
		if err := rows.Scan(
			&ms.ID, &ms.MatchID, &ms.PlayerID, &ms.Runs, &ms.BallsFaced, &ms.Fours, &ms.Sixes,
			&ms.IsOut, &ms.WicketOver, &ms.WicketBall, &ms.DismissalType, &ms.Overs, &ms.RunsConceded,
			&ms.Wickets, &ms.Catches, &ms.Drops, &ms.Saves, &ms.IsOpponent, &ms.PlayerName,
		); err != nil {
			return nil, fmt.Errorf("scan manual score: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

func (r queries) ListWagonShots(ctx context.Context, matchID int64) ([]scoring.WagonShot, error) {
	rows, err := r.q.Query(ctx, "wagon_by_match", matchID)
	if err != nil {
		return nil, fmt.Errorf("query wagon wheel: %w", err)
	}
	defer rows.Close()

	var out []scoring.WagonShot
	for rows.Next() {
		var w scoring.WagonShot
		if err := rows.Scan(
			&w.ID, &w.MatchID, &w.PlayerID, &w.Angle, &w.Distance, &w.Runs, &w.ShotType,
			&w.IsOpponent, &w.PlayerName,
		); err != nil {
			return nil, fmt.Errorf("scan wagon shot: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r queries) ListLiveBalls(ctx context.Context, matchID int64) ([]scoring.LiveBall, error) {
	rows, err := r.q.Query(ctx, "live_balls_by_match", matchID)
	if err != nil {
		return nil, fmt.Errorf("query live balls: %w", err)
	}
	defer rows.Close()

	var out []scoring.LiveBall
	for rows.Next() {
		b, err := scanBall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r queries) LastLiveBall(ctx context.Context, matchID int64) (*scoring.LiveBall, error) {
	b, err := scanBall(r.q.QueryRow(ctx, "last_live_ball", matchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r queries) GetPlayerStats(ctx context.Context, playerID int64) (*scoring.PlayerStats, error) {
	var ps scoring.PlayerStats
	err := r.q.QueryRow(ctx, "player_stats_by_id", playerID).Scan(
		&ps.PlayerID, &ps.Matches, &ps.TotalRuns, &ps.TotalBalls, &ps.TotalFours, &ps.TotalSixes,
		&ps.Outs, &ps.Wickets, &ps.OversBowled, &ps.RunsConceded, &ps.Catches, &ps.Drops, &ps.Saves,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query player stats: %w", err)
	}
	return &ps, nil
}

func (r queries) TopPlayerStats(ctx context.Context, stat scoring.LeaderStat, limit int) ([]scoring.LeaderRow, error) {
	rows, err := r.q.Query(ctx, "leaderboard", string(stat), limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := []scoring.LeaderRow{}
	for rows.Next() {
		var lr scoring.LeaderRow
		if err := rows.Scan(&lr.PlayerID, &lr.PlayerName, &lr.Value); err != nil {
			return nil, fmt.Errorf("scan leader: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// PendingMatchIDs lists matches awaiting approval, oldest first.
func (s *Postgres) PendingMatchIDs(ctx context.Context, limit int) ([]int64, error) {
	rows, err := s.pool.Query(ctx, "pending_match_ids", limit)
	if err != nil {
		return nil, fmt.Errorf("query pending matches: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending match: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --------------------------------------------------------------------------
// Writes (transaction only)
// --------------------------------------------------------------------------

type pgTx struct {
	queries
}

func (t *pgTx) LockMatch(ctx context.Context, matchID int64) (*scoring.Match, error) {
	return scanMatch(t.q.QueryRow(ctx, "match_lock", matchID), matchID)
}

func (t *pgTx) InsertMatch(ctx context.Context, m *scoring.Match) (int64, error) {
	var id int64
	err := t.q.QueryRow(ctx, `
		INSERT INTO `+config.MatchesTable+` (
			title, match_date, format, venue, scoring_mode, team_name, opponent_name,
			status, scorer_coach_id, scorer_player_id, toss_winner, toss_decision,
			current_innings, batting_side, team_overs, opp_overs
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id`,
		m.Title, m.MatchDate, m.Format, m.Venue, string(m.ScoringMode), m.TeamName, m.OpponentName,
		string(m.Status), m.ScorerCoachID, m.ScorerPlayerID, m.TossWinner, m.TossDecision,
		m.CurrentInnings, m.BattingSide, m.TeamOvers, m.OppOvers,
	).Scan(&id)
	return id, err
}

func (t *pgTx) UpdateMatch(ctx context.Context, m *scoring.Match) error {
	tag, err := t.q.Exec(ctx, `
		UPDATE `+config.MatchesTable+` SET
			status = $2,
			current_innings = $3,
			batting_side = $4,
			started_at = $5,
			completed_at = $6,
			result = $7,
			team_runs = $8,
			team_wkts = $9,
			team_overs = $10,
			opp_runs = $11,
			opp_wkts = $12,
			opp_overs = $13,
			updated_at = NOW()
		WHERE id = $1`,
		m.ID, string(m.Status), m.CurrentInnings, m.BattingSide, m.StartedAt, m.CompletedAt,
		m.Result, m.TeamRuns, m.TeamWkts, m.TeamOvers, m.OppRuns, m.OppWkts, m.OppOvers,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: match %d", scoring.ErrNotFound, m.ID)
	}
	return nil
}

func (t *pgTx) DeleteManualScores(ctx context.Context, matchID int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM `+config.ManualScoresTable+` WHERE match_id = $1`, matchID)
	return err
}

func (t *pgTx) DeleteWagonShots(ctx context.Context, matchID int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM `+config.WagonWheelTable+` WHERE match_id = $1`, matchID)
	return err
}

func (t *pgTx) DeleteOpponentScores(ctx context.Context, matchID int64) error {
	_, err := t.q.Exec(ctx,
		`DELETE FROM `+config.ManualScoresTable+` WHERE match_id = $1 AND is_opponent = true`, matchID)
	return err
}

// InsertManualScores queues one INSERT per row in a single batch so storage
// order matches payload order.
func (t *pgTx) InsertManualScores(ctx context.Context, rows []scoring.ManualScoreRow) error {
	if len(rows) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`
			INSERT INTO `+config.ManualScoresTable+` (
				match_id, player_id, runs, balls_faced, fours, sixes, is_out,
				wicket_over, wicket_ball, dismissal_type, overs, runs_conceded,
				wickets, catches, drops, saves, is_opponent
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
			r.MatchID, r.PlayerID, r.Runs, r.BallsFaced, r.Fours, r.Sixes, r.IsOut,
			r.WicketOver, r.WicketBall, r.DismissalType, r.Overs, r.RunsConceded,
			r.Wickets, r.Catches, r.Drops, r.Saves, r.IsOpponent,
		)
	}
	return unknownPlayer(t.q.SendBatch(ctx, b).Close(), "manual score")
}

func (t *pgTx) InsertWagonShots(ctx context.Context, shots []scoring.WagonShot) error {
	if len(shots) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, w := range shots {
		b.Queue(`
			INSERT INTO `+config.WagonWheelTable+` (
				match_id, player_id, angle, distance, runs, shot_type, is_opponent
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			w.MatchID, w.PlayerID, w.Angle, w.Distance, w.Runs, w.ShotType, w.IsOpponent,
		)
	}
	return unknownPlayer(t.q.SendBatch(ctx, b).Close(), "wagon wheel")
}

func (t *pgTx) InsertLiveBall(ctx context.Context, b *scoring.LiveBall) (int64, error) {
	var id int64
	err := t.q.QueryRow(ctx, `
		INSERT INTO `+config.LiveBallsTable+` (
			match_id, over_no, ball_no, striker, non_striker, bowler, runs,
			extras, wicket, commentary, angle, shot_type, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id`,
		b.MatchID, b.OverNo, b.BallNo, b.Striker, b.NonStriker, b.Bowler, b.Runs,
		b.Extras, b.Wicket, b.Commentary, b.Angle, b.ShotType, b.CreatedAt,
	).Scan(&id)
	return id, err
}

func (t *pgTx) SavePlayerStats(ctx context.Context, ps *scoring.PlayerStats) error {
	_, err := t.q.Exec(ctx, `
		INSERT INTO `+config.PlayerStatsTable+` (
			player_id, matches, total_runs, total_balls, total_fours, total_sixes, outs,
			wickets, overs_bowled, runs_conceded, catches, drops, saves
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (player_id) DO UPDATE SET
			matches = EXCLUDED.matches,
			total_runs = EXCLUDED.total_runs,
			total_balls = EXCLUDED.total_balls,
			total_fours = EXCLUDED.total_fours,
			total_sixes = EXCLUDED.total_sixes,
			outs = EXCLUDED.outs,
			wickets = EXCLUDED.wickets,
			overs_bowled = EXCLUDED.overs_bowled,
			runs_conceded = EXCLUDED.runs_conceded,
			catches = EXCLUDED.catches,
			drops = EXCLUDED.drops,
			saves = EXCLUDED.saves,
			updated_at = NOW()`,
		ps.PlayerID, ps.Matches, ps.TotalRuns, ps.TotalBalls, ps.TotalFours, ps.TotalSixes, ps.Outs,
		ps.Wickets, ps.OversBowled, ps.RunsConceded, ps.Catches, ps.Drops, ps.Saves,
	)
	return err
}

func (t *pgTx) ReplaceSquad(ctx context.Context, matchID int64, playerIDs []int64, opponents []scoring.OpponentPlayer) error {
	if _, err := t.q.Exec(ctx, `DELETE FROM `+config.MatchAssignmentsTable+` WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("clear squad: %w", err)
	}
	if err := t.DeleteOpponentPlayers(ctx, matchID); err != nil {
		return fmt.Errorf("clear opponents: %w", err)
	}

	b := &pgx.Batch{}
	for _, id := range playerIDs {
		b.Queue(`INSERT INTO `+config.MatchAssignmentsTable+` (match_id, player_id) VALUES ($1, $2)`, matchID, id)
	}
	for _, o := range opponents {
		b.Queue(`INSERT INTO `+config.OpponentPlayersTable+` (match_id, name, role) VALUES ($1, $2, $3)`,
			matchID, o.Name, o.Role)
	}
	if b.Len() == 0 {
		return nil
	}
	return unknownPlayer(t.q.SendBatch(ctx, b).Close(), "squad")
}

func (t *pgTx) DeleteOpponentPlayers(ctx context.Context, matchID int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM `+config.OpponentPlayersTable+` WHERE match_id = $1`, matchID)
	return err
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func scanMatch(row pgx.Row, matchID int64) (*scoring.Match, error) {
	var (
		m           scoring.Match
		mode, state string
	)
	err := row.Scan(
		&m.ID, &m.Title, &m.MatchDate, &m.Format, &m.Venue, &mode, &m.TeamName, &m.OpponentName, &state,
		&m.ScorerCoachID, &m.ScorerPlayerID, &m.TossWinner, &m.TossDecision, &m.CurrentInnings, &m.BattingSide,
		&m.StartedAt, &m.CompletedAt, &m.Result, &m.TeamRuns, &m.TeamWkts, &m.TeamOvers, &m.OppRuns, &m.OppWkts, &m.OppOvers,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: match %d", scoring.ErrNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("scan match %d: %w", matchID, err)
	}
	m.ScoringMode = scoring.ScoringMode(mode)
	m.Status = scoring.Status(state)
	return &m, nil
}

func scanBall(row pgx.Row) (*scoring.LiveBall, error) {
	var b scoring.LiveBall
	err := row.Scan(
		&b.ID, &b.MatchID, &b.OverNo, &b.BallNo, &b.Striker, &b.NonStriker, &b.Bowler, &b.Runs, &b.Extras,
		&b.Wicket, &b.Commentary, &b.Angle, &b.ShotType, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan live ball: %w", err)
	}
	return &b, nil
}

// unknownPlayer reports a foreign key violation on a player reference as a
// validation failure.
func unknownPlayer(err error, what string) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown player in %s", scoring.ErrValidation, what)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
