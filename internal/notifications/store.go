package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Store persists notifications in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert persists a batch of notifications in one round trip.
func (s *Store) Insert(ctx context.Context, ns []Notification) (int, error) {
	if len(ns) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(`
			INSERT INTO `+config.NotificationsTable+` (player_id, match_id, title, message)
			VALUES ($1, $2, $3, $4)`,
			n.PlayerID, n.MatchID, n.Title, n.Message,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range ns {
		if _, err := br.Exec(); err != nil {
			return inserted, fmt.Errorf("insert notification: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// Unread returns a player's unread notifications, newest first.
func (s *Store) Unread(ctx context.Context, playerID int64, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := s.pool.Query(ctx, "unread_notifications", playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.PlayerID, &n.MatchID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead marks one of the player's notifications read.
func (s *Store) MarkRead(ctx context.Context, playerID, id int64) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE `+config.NotificationsTable+` SET is_read = true, read_at = NOW()
		WHERE id = $1 AND player_id = $2`, id, playerID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %d", scoring.ErrNotFound, id)
	}
	return nil
}

// PurgeRead deletes read notifications older than the cutoff.
func (s *Store) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM `+config.NotificationsTable+`
		WHERE is_read = true AND read_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
