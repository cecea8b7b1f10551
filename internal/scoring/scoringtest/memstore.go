// Package scoringtest provides an in-memory scoring.Store for tests.
//
// Transactions are serialised by a single mutex and roll back by restoring a
// snapshot taken when the transaction began.
package scoringtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

var (
	_ scoring.Store = (*MemStore)(nil)
	_ scoring.Tx    = (*memTx)(nil)
)

// MemStore is a scoring.Store held in memory.
type MemStore struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
	commits  int
}

type state struct {
	nextID    int64
	matches   map[int64]scoring.Match
	manual    []scoring.ManualScoreRow
	wagon     []scoring.WagonShot
	balls     []scoring.LiveBall
	stats     map[int64]scoring.PlayerStats
	players   map[int64]string
	squads    map[int64][]int64
	opponents map[int64][]scoring.OpponentPlayer
}

// New returns an empty store.
func New() *MemStore {
	return &MemStore{
		st: &state{
			matches:   make(map[int64]scoring.Match),
			stats:     make(map[int64]scoring.PlayerStats),
			players:   make(map[int64]string),
			squads:    make(map[int64][]int64),
			opponents: make(map[int64][]scoring.OpponentPlayer),
		},
		failures: make(map[string]error),
	}
}

// FailOn makes the named Tx method (e.g. "InsertWagonShots") return err.
// Pass nil to clear it.
func (s *MemStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Commits returns the number of committed transactions.
func (s *MemStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// ---------------------------------------------------------------------------
// Seeding and inspection
// ---------------------------------------------------------------------------

// AddMatch stores m with a fresh id and returns the id.
func (s *MemStore) AddMatch(m scoring.Match) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.nextID++
	m.ID = s.st.nextID
	s.st.matches[m.ID] = m
	return m.ID
}

// AddPlayer registers a display name used by read-side joins.
func (s *MemStore) AddPlayer(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.players[id] = name
}

// SetStats overwrites a ledger row.
func (s *MemStore) SetStats(ps scoring.PlayerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.stats[ps.PlayerID] = ps
}

// SetOpponents overwrites the temporary opponent players for a match.
func (s *MemStore) SetOpponents(matchID int64, players []scoring.OpponentPlayer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.opponents[matchID] = append([]scoring.OpponentPlayer(nil), players...)
}

// Match returns a copy of the stored match, or nil.
func (s *MemStore) Match(id int64) *scoring.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.st.matches[id]
	if !ok {
		return nil
	}
	return &m
}

// Stats returns a copy of the ledger row, or nil.
func (s *MemStore) Stats(playerID int64) *scoring.PlayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, ok := s.st.stats[playerID]
	if !ok {
		return nil
	}
	return &ps
}

// ManualRows returns every stored manual row for the match, opponent rows
// included.
func (s *MemStore) ManualRows(matchID int64) []scoring.ManualScoreRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, _ := s.st.ListManualScores(context.Background(), matchID, false)
	return rows
}

// WagonShots returns the stored wagon-wheel shots for the match.
func (s *MemStore) WagonShots(matchID int64) []scoring.WagonShot {
	s.mu.Lock()
	defer s.mu.Unlock()
	shots, _ := s.st.ListWagonShots(context.Background(), matchID)
	return shots
}

// Squad returns the selected player ids for the match.
func (s *MemStore) Squad(matchID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.st.squads[matchID]...)
}

// Opponents returns the temporary opponent players for the match.
func (s *MemStore) Opponents(matchID int64) []scoring.OpponentPlayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scoring.OpponentPlayer(nil), s.st.opponents[matchID]...)
}

// ---------------------------------------------------------------------------
// scoring.Store
// ---------------------------------------------------------------------------

func (s *MemStore) WithTx(ctx context.Context, fn func(tx scoring.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&memTx{state: s.st, failures: s.failures}); err != nil {
		s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return err
	}
	s.commits++
	return nil
}

func (s *MemStore) GetMatch(ctx context.Context, matchID int64) (*scoring.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.GetMatch(ctx, matchID)
}

func (s *MemStore) ListManualScores(ctx context.Context, matchID int64, ownOnly bool) ([]scoring.ManualScoreRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ListManualScores(ctx, matchID, ownOnly)
}

func (s *MemStore) ListWagonShots(ctx context.Context, matchID int64) ([]scoring.WagonShot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ListWagonShots(ctx, matchID)
}

func (s *MemStore) ListLiveBalls(ctx context.Context, matchID int64) ([]scoring.LiveBall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.ListLiveBalls(ctx, matchID)
}

func (s *MemStore) LastLiveBall(ctx context.Context, matchID int64) (*scoring.LiveBall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.LastLiveBall(ctx, matchID)
}

func (s *MemStore) GetPlayerStats(ctx context.Context, playerID int64) (*scoring.PlayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.GetPlayerStats(ctx, playerID)
}

func (s *MemStore) TopPlayerStats(ctx context.Context, stat scoring.LeaderStat, limit int) ([]scoring.LeaderRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.TopPlayerStats(ctx, stat, limit)
}

// PendingMatchIDs lists matches awaiting approval in id order.
func (s *MemStore) PendingMatchIDs(_ context.Context, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id, m := range s.st.matches {
		if m.Status == scoring.StatusPendingApproval {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// State queries (caller holds the lock)
// ---------------------------------------------------------------------------

func (st *state) clone() *state {
	c := &state{
		nextID:    st.nextID,
		matches:   make(map[int64]scoring.Match, len(st.matches)),
		manual:    append([]scoring.ManualScoreRow(nil), st.manual...),
		wagon:     append([]scoring.WagonShot(nil), st.wagon...),
		balls:     append([]scoring.LiveBall(nil), st.balls...),
		stats:     make(map[int64]scoring.PlayerStats, len(st.stats)),
		players:   make(map[int64]string, len(st.players)),
		squads:    make(map[int64][]int64, len(st.squads)),
		opponents: make(map[int64][]scoring.OpponentPlayer, len(st.opponents)),
	}
	for k, v := range st.matches {
		c.matches[k] = v
	}
	for k, v := range st.stats {
		c.stats[k] = v
	}
	for k, v := range st.players {
		c.players[k] = v
	}
	for k, v := range st.squads {
		c.squads[k] = append([]int64(nil), v...)
	}
	for k, v := range st.opponents {
		c.opponents[k] = append([]scoring.OpponentPlayer(nil), v...)
	}
	return c
}

func (st *state) GetMatch(_ context.Context, matchID int64) (*scoring.Match, error) {
	m, ok := st.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: match %d", scoring.ErrNotFound, matchID)
	}
	return &m, nil
}

func (st *state) ListManualScores(_ context.Context, matchID int64, ownOnly bool) ([]scoring.ManualScoreRow, error) {
	var out []scoring.ManualScoreRow
	for _, r := range st.manual {
		if r.MatchID != matchID || (ownOnly && r.IsOpponent) {
			continue
		}
		if r.PlayerID != nil {
			r.PlayerName = st.players[*r.PlayerID]
		}
		out = append(out, r)
	}
	return out, nil
}

func (st *state) ListWagonShots(_ context.Context, matchID int64) ([]scoring.WagonShot, error) {
	var out []scoring.WagonShot
	for _, w := range st.wagon {
		if w.MatchID != matchID {
			continue
		}
		if w.PlayerID != nil {
			w.PlayerName = st.players[*w.PlayerID]
		}
		out = append(out, w)
	}
	return out, nil
}

func (st *state) ListLiveBalls(_ context.Context, matchID int64) ([]scoring.LiveBall, error) {
	var out []scoring.LiveBall
	for _, b := range st.balls {
		if b.MatchID == matchID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (st *state) LastLiveBall(ctx context.Context, matchID int64) (*scoring.LiveBall, error) {
	balls, _ := st.ListLiveBalls(ctx, matchID)
	if len(balls) == 0 {
		return nil, nil
	}
	last := balls[len(balls)-1]
	return &last, nil
}

func (st *state) GetPlayerStats(_ context.Context, playerID int64) (*scoring.PlayerStats, error) {
	ps, ok := st.stats[playerID]
	if !ok {
		return nil, nil
	}
	return &ps, nil
}

func (st *state) TopPlayerStats(_ context.Context, stat scoring.LeaderStat, limit int) ([]scoring.LeaderRow, error) {
	out := make([]scoring.LeaderRow, 0, len(st.stats))
	for id, ps := range st.stats {
		var v int
		switch stat {
		case scoring.LeaderRuns:
			v = ps.TotalRuns
		case scoring.LeaderWickets:
			v = ps.Wickets
		case scoring.LeaderCatches:
			v = ps.Catches
		case scoring.LeaderMatches:
			v = ps.Matches
		default:
			return nil, fmt.Errorf("unknown stat %q", stat)
		}
		out = append(out, scoring.LeaderRow{PlayerID: id, PlayerName: st.players[id], Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// scoring.Tx
// ---------------------------------------------------------------------------

type memTx struct {
	*state
	failures map[string]error
}

func (tx *memTx) fail(op string) error {
	return tx.failures[op]
}

func (tx *memTx) LockMatch(ctx context.Context, matchID int64) (*scoring.Match, error) {
	if err := tx.fail("LockMatch"); err != nil {
		return nil, err
	}
	return tx.GetMatch(ctx, matchID)
}

func (tx *memTx) InsertMatch(_ context.Context, m *scoring.Match) (int64, error) {
	if err := tx.fail("InsertMatch"); err != nil {
		return 0, err
	}
	tx.nextID++
	stored := *m
	stored.ID = tx.nextID
	tx.matches[stored.ID] = stored
	return stored.ID, nil
}

func (tx *memTx) UpdateMatch(_ context.Context, m *scoring.Match) error {
	if err := tx.fail("UpdateMatch"); err != nil {
		return err
	}
	if _, ok := tx.matches[m.ID]; !ok {
		return fmt.Errorf("%w: match %d", scoring.ErrNotFound, m.ID)
	}
	tx.matches[m.ID] = *m
	return nil
}

func (tx *memTx) DeleteManualScores(_ context.Context, matchID int64) error {
	if err := tx.fail("DeleteManualScores"); err != nil {
		return err
	}
	tx.manual = filter(tx.manual, func(r scoring.ManualScoreRow) bool { return r.MatchID != matchID })
	return nil
}

func (tx *memTx) DeleteWagonShots(_ context.Context, matchID int64) error {
	if err := tx.fail("DeleteWagonShots"); err != nil {
		return err
	}
	tx.wagon = filter(tx.wagon, func(w scoring.WagonShot) bool { return w.MatchID != matchID })
	return nil
}

func (tx *memTx) InsertManualScores(_ context.Context, rows []scoring.ManualScoreRow) error {
	if err := tx.fail("InsertManualScores"); err != nil {
		return err
	}
	for _, r := range rows {
		tx.nextID++
		r.ID = tx.nextID
		r.PlayerName = ""
		tx.manual = append(tx.manual, r)
	}
	return nil
}

func (tx *memTx) InsertWagonShots(_ context.Context, shots []scoring.WagonShot) error {
	if err := tx.fail("InsertWagonShots"); err != nil {
		return err
	}
	for _, w := range shots {
		tx.nextID++
		w.ID = tx.nextID
		w.PlayerName = ""
		tx.wagon = append(tx.wagon, w)
	}
	return nil
}

func (tx *memTx) DeleteOpponentScores(_ context.Context, matchID int64) error {
	if err := tx.fail("DeleteOpponentScores"); err != nil {
		return err
	}
	tx.manual = filter(tx.manual, func(r scoring.ManualScoreRow) bool {
		return r.MatchID != matchID || !r.IsOpponent
	})
	return nil
}

func (tx *memTx) InsertLiveBall(_ context.Context, b *scoring.LiveBall) (int64, error) {
	if err := tx.fail("InsertLiveBall"); err != nil {
		return 0, err
	}
	tx.nextID++
	stored := *b
	stored.ID = tx.nextID
	tx.balls = append(tx.balls, stored)
	return stored.ID, nil
}

func (tx *memTx) SavePlayerStats(_ context.Context, ps *scoring.PlayerStats) error {
	if err := tx.fail("SavePlayerStats"); err != nil {
		return err
	}
	tx.stats[ps.PlayerID] = *ps
	return nil
}

func (tx *memTx) ReplaceSquad(_ context.Context, matchID int64, playerIDs []int64, opponents []scoring.OpponentPlayer) error {
	if err := tx.fail("ReplaceSquad"); err != nil {
		return err
	}
	tx.squads[matchID] = append([]int64(nil), playerIDs...)
	tx.opponents[matchID] = append([]scoring.OpponentPlayer(nil), opponents...)
	return nil
}

func (tx *memTx) DeleteOpponentPlayers(_ context.Context, matchID int64) error {
	if err := tx.fail("DeleteOpponentPlayers"); err != nil {
		return err
	}
	delete(tx.opponents, matchID)
	return nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
