package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Profile is the player-editable part of a player record.
type Profile struct {
	DateOfBirth  *time.Time `json:"date_of_birth"`
	BattingStyle string     `json:"batting_style"`
	BowlingStyle string     `json:"bowling_style"`
	RoleInTeam   string     `json:"role_in_team"`
	WicketKeeper bool       `json:"wicket_keeper"`
	Bio          string     `json:"bio"`
}

// Player is a squad-selectable player.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     *int   `json:"age,omitempty"`
	BatchID *int64 `json:"batch_id,omitempty"`
	Role    string `json:"role_in_team"`
}

// Repo persists roster data.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewRepo creates a Repo on pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: time.Now}
}

// Batches lists batches ordered by min_age.
func (r *Repo) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := r.pool.Query(ctx, "batches")
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.MinAge, &b.MaxAge); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SeedBatches upserts batches by name.
func (r *Repo) SeedBatches(ctx context.Context, batches []Batch) (int, error) {
	n := 0
	for _, b := range batches {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO `+config.BatchesTable+` (name, min_age, max_age)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET
				min_age = EXCLUDED.min_age,
				max_age = EXCLUDED.max_age`,
			b.Name, b.MinAge, b.MaxAge,
		)
		if err != nil {
			return n, fmt.Errorf("seed batch %s: %w", b.Name, err)
		}
		n++
	}
	return n, nil
}

// UpdateProfile saves a player's profile and recomputes age and batch from
// the new date of birth. An unmatched age leaves the current batch in place.
func (r *Repo) UpdateProfile(ctx context.Context, playerID int64, p Profile) (*Player, error) {
	batches, err := r.Batches(ctx)
	if err != nil {
		return nil, err
	}
	c := Classify(p.DateOfBirth, r.now(), batches)

	var out Player
	err = r.pool.QueryRow(ctx, `
		UPDATE `+config.PlayersTable+` SET
			date_of_birth = $2,
			batting_style = $3,
			bowling_style = $4,
			role_in_team = $5,
			wicket_keeper = $6,
			bio = $7,
			age = COALESCE($8, age),
			batch_id = COALESCE($9, batch_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, age, batch_id, role_in_team`,
		playerID, p.DateOfBirth, p.BattingStyle, p.BowlingStyle, p.RoleInTeam,
		p.WicketKeeper, p.Bio, c.Age, c.BatchID,
	).Scan(&out.ID, &out.Name, &out.Age, &out.BatchID, &out.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %d", scoring.ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &out, nil
}

// ApprovePlayer marks a registered player approved and classifies them from
// their stored date of birth.
func (r *Repo) ApprovePlayer(ctx context.Context, playerID int64) (*Player, error) {
	batches, err := r.Batches(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var dob *time.Time
	err = tx.QueryRow(ctx,
		`SELECT date_of_birth FROM `+config.PlayersTable+` WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&dob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %d", scoring.ErrNotFound, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}

	c := Classify(dob, r.now(), batches)
	var out Player
	err = tx.QueryRow(ctx, `
		UPDATE `+config.PlayersTable+` SET
			status = 'approved',
			age = COALESCE($2, age),
			batch_id = COALESCE($3, batch_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, age, batch_id, role_in_team`,
		playerID, c.Age, c.BatchID,
	).Scan(&out.ID, &out.Name, &out.Age, &out.BatchID, &out.Role)
	if err != nil {
		return nil, fmt.Errorf("approve player: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

// AllowedPlayers returns the match's selected squad, or every approved
// player when no squad has been selected.
func (r *Repo) AllowedPlayers(ctx context.Context, matchID int64) ([]Player, error) {
	rows, err := r.pool.Query(ctx, `
		WITH squad AS (
			SELECT player_id FROM `+config.MatchAssignmentsTable+` WHERE match_id = $1
		)
		SELECT p.id, p.name, p.age, p.batch_id, p.role_in_team
		FROM `+config.PlayersTable+` p
		WHERE CASE WHEN EXISTS (SELECT 1 FROM squad)
			THEN p.id IN (SELECT player_id FROM squad)
			ELSE p.status = 'approved'
		END
		ORDER BY p.name`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query allowed players: %w", err)
	}
	defer rows.Close()

	out := []Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.BatchID, &p.Role); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
