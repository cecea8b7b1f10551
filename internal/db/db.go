// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the hot read statements used by the
// API and the scoring store. Writes are issued inline inside transactions.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Matches
		"match_by_id":       "SELECT " + MatchColumns + " FROM " + config.MatchesTable + " WHERE id = $1",
		"match_lock":        "SELECT " + MatchColumns + " FROM " + config.MatchesTable + " WHERE id = $1 FOR UPDATE",
		"pending_match_ids": "SELECT id FROM " + config.MatchesTable + " WHERE status = 'pending_approval' ORDER BY updated_at, id LIMIT $1",

		// Manual scores & wagon wheel (read-side joins for display names)
		"manual_scores_by_match": "SELECT " + ManualScoreColumns + " FROM " + config.ManualScoresTable + " ms LEFT JOIN " + config.PlayersTable + " p ON p.id = ms.player_id WHERE ms.match_id = $1 AND (NOT $2::boolean OR ms.is_opponent = false) ORDER BY ms.id",
		"wagon_by_match":         "SELECT " + WagonColumns + " FROM " + config.WagonWheelTable + " w LEFT JOIN " + config.PlayersTable + " p ON p.id = w.player_id WHERE w.match_id = $1 ORDER BY w.id",

		// Live balls
		"live_balls_by_match": "SELECT " + LiveBallColumns + " FROM " + config.LiveBallsTable + " WHERE match_id = $1 ORDER BY id",
		"last_live_ball":      "SELECT " + LiveBallColumns + " FROM " + config.LiveBallsTable + " WHERE match_id = $1 ORDER BY id DESC LIMIT 1",

		// Career ledger
		"player_stats_by_id": "SELECT " + PlayerStatsColumns + " FROM " + config.PlayerStatsTable + " WHERE player_id = $1",
		"leaderboard":        "SELECT player_id, player_name, value FROM " + LeaderboardView + " WHERE stat = $1 ORDER BY value DESC, player_id LIMIT $2",

		// Roster
		"player_name": "SELECT name FROM " + config.PlayersTable + " WHERE id = $1",
		"batches":     "SELECT id, name, min_age, max_age FROM " + config.BatchesTable + " ORDER BY min_age, id",

		// Notifications
		"unread_notifications": "SELECT id, player_id, match_id, title, message, is_read, created_at FROM " + config.NotificationsTable + " WHERE player_id = $1 AND is_read = false ORDER BY created_at DESC LIMIT $2",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Column lists shared by prepared statements and the store's scanners.
// Order matters: scanners read columns positionally.
// --------------------------------------------------------------------------

const (
	MatchColumns = "id, title, match_date, format, venue, scoring_mode, team_name, opponent_name, status, " +
		"scorer_coach_id, scorer_player_id, toss_winner, toss_decision, current_innings, batting_side, " +
		"started_at, completed_at, result, team_runs, team_wkts, team_overs, opp_runs, opp_wkts, opp_overs"

	ManualScoreColumns = "ms.id, ms.match_id, ms.player_id, ms.runs, ms.balls_faced, ms.fours, ms.sixes, " +
		"ms.is_out, ms.wicket_over, ms.wicket_ball, ms.dismissal_type, ms.overs, ms.runs_conceded, " +
		"ms.wickets, ms.catches, ms.drops, ms.saves, ms.is_opponent, COALESCE(p.name, '')"

	WagonColumns = "w.id, w.match_id, w.player_id, w.angle, w.distance, w.runs, w.shot_type, " +
		"w.is_opponent, COALESCE(p.name, '')"

	LiveBallColumns = "id, match_id, over_no, ball_no, striker, non_striker, bowler, runs, extras, " +
		"wicket, commentary, angle, shot_type, created_at"

	PlayerStatsColumns = "player_id, matches, total_runs, total_balls, total_fours, total_sixes, outs, " +
		"wickets, overs_bowled, runs_conceded, catches, drops, saves"

	// LeaderboardView is refreshed by the maintenance package.
	LeaderboardView = "mv_leaderboard"
)
