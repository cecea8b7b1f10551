package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

var _ Store = (*Repo)(nil)

const pollColumns = `id, title, match_date, venue, match_fee::float8, match_id, created_by, finalized, created_at`

// Repo is the Postgres Store.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a Repo on pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) CreatePoll(ctx context.Context, p *Poll) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO `+config.PollsTable+` (title, match_date, venue, match_fee, match_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Title, p.MatchDate, p.Venue, p.MatchFee, p.MatchID, p.CreatedBy, p.CreatedAt,
	).Scan(&id)
	return id, err
}

func (r *Repo) GetPoll(ctx context.Context, pollID int64) (*Poll, error) {
	return scanPoll(r.pool.QueryRow(ctx,
		`SELECT `+pollColumns+` FROM `+config.PollsTable+` WHERE id = $1`, pollID), pollID)
}

func (r *Repo) UpdateResponse(ctx context.Context, pollID, playerID int64, fn func(p *Poll, resp *Response) error) (*Response, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := scanPoll(tx.QueryRow(ctx,
		`SELECT `+pollColumns+` FROM `+config.PollsTable+` WHERE id = $1 FOR UPDATE`, pollID), pollID)
	if err != nil {
		return nil, err
	}

	resp := Response{PollID: pollID, PlayerID: playerID}
	err = tx.QueryRow(ctx, `
		SELECT status, later_count, updated_at FROM `+config.ResponsesTable+`
		WHERE poll_id = $1 AND player_id = $2`, pollID, playerID,
	).Scan(&resp.Status, &resp.LaterCount, &resp.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load response: %w", err)
	}

	if err := fn(p, &resp); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO `+config.ResponsesTable+` (poll_id, player_id, status, later_count, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, player_id) DO UPDATE SET
			status = EXCLUDED.status,
			later_count = EXCLUDED.later_count,
			updated_at = EXCLUDED.updated_at`,
		pollID, playerID, resp.Status, resp.LaterCount, resp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &resp, nil
}

func (r *Repo) Responses(ctx context.Context, pollID int64) ([]Response, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ar.poll_id, ar.player_id, p.name, ar.status, ar.later_count, ar.updated_at
		FROM `+config.ResponsesTable+` ar
		JOIN `+config.PlayersTable+` p ON p.id = ar.player_id
		WHERE ar.poll_id = $1
		ORDER BY p.name`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	out := []Response{}
	for rows.Next() {
		var resp Response
		if err := rows.Scan(&resp.PollID, &resp.PlayerID, &resp.PlayerName,
			&resp.Status, &resp.LaterCount, &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

func (r *Repo) MarkFinalized(ctx context.Context, pollID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE `+config.PollsTable+` SET finalized = true WHERE id = $1 AND NOT finalized`, pollID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repo) ApprovedPlayerIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM `+config.PlayersTable+` WHERE status = 'approved' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func scanPoll(row pgx.Row, pollID int64) (*Poll, error) {
	var p Poll
	err := row.Scan(&p.ID, &p.Title, &p.MatchDate, &p.Venue, &p.MatchFee,
		&p.MatchID, &p.CreatedBy, &p.Finalized, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: poll %d", scoring.ErrNotFound, pollID)
	}
	if err != nil {
		return nil, fmt.Errorf("load poll: %w", err)
	}
	return &p, nil
}
