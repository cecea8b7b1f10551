package scoring

import "context"

// Queries are the read operations shared by the store and an open
// transaction. Implementations return ErrNotFound for unknown matches.
type Queries interface {
	GetMatch(ctx context.Context, matchID int64) (*Match, error)
	// ListManualScores returns rows in storage (insertion) order. With
	// ownOnly set, opponent rows are excluded.
	ListManualScores(ctx context.Context, matchID int64, ownOnly bool) ([]ManualScoreRow, error)
	ListWagonShots(ctx context.Context, matchID int64) ([]WagonShot, error)
	ListLiveBalls(ctx context.Context, matchID int64) ([]LiveBall, error)
	// LastLiveBall returns nil, nil when the match has no balls.
	LastLiveBall(ctx context.Context, matchID int64) (*LiveBall, error)
	// GetPlayerStats returns nil, nil when the player has no ledger row.
	GetPlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error)
	TopPlayerStats(ctx context.Context, stat LeaderStat, limit int) ([]LeaderRow, error)
}

// Tx is a unit of work. Nothing it writes is visible outside until the
// enclosing WithTx returns nil.
type Tx interface {
	Queries

	// LockMatch loads the match and holds an exclusive lock on it until the
	// transaction ends, ordering concurrent writers for the same match.
	LockMatch(ctx context.Context, matchID int64) (*Match, error)
	InsertMatch(ctx context.Context, m *Match) (int64, error)
	UpdateMatch(ctx context.Context, m *Match) error

	DeleteManualScores(ctx context.Context, matchID int64) error
	DeleteWagonShots(ctx context.Context, matchID int64) error
	InsertManualScores(ctx context.Context, rows []ManualScoreRow) error
	InsertWagonShots(ctx context.Context, shots []WagonShot) error
	DeleteOpponentScores(ctx context.Context, matchID int64) error

	InsertLiveBall(ctx context.Context, b *LiveBall) (int64, error)

	// SavePlayerStats inserts or overwrites the ledger row.
	SavePlayerStats(ctx context.Context, s *PlayerStats) error

	ReplaceSquad(ctx context.Context, matchID int64, playerIDs []int64, opponents []OpponentPlayer) error
	DeleteOpponentPlayers(ctx context.Context, matchID int64) error
}

// Store opens transactions and serves reads outside of them.
type Store interface {
	Queries
	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// LeaderStat names a ledger counter usable for rankings.
type LeaderStat string

const (
	LeaderRuns    LeaderStat = "runs"
	LeaderWickets LeaderStat = "wickets"
	LeaderCatches LeaderStat = "catches"
	LeaderMatches LeaderStat = "matches"
)

// Valid reports whether s is a known ranking stat.
func (s LeaderStat) Valid() bool {
	switch s {
	case LeaderRuns, LeaderWickets, LeaderCatches, LeaderMatches:
		return true
	}
	return false
}

// LeaderRow is one ranked player.
type LeaderRow struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	Value      int    `json:"value"`
}
