package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

const defaultLeaderboardLimit = 10

// GetCareer returns a player's career ledger with derived rates.
// @Summary Player career
// @Description Career totals merged from approved matches, with batting average, strike rate and economy.
// @Tags stats
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} scoring.Career
// @Success 304
// @Failure 400 {object} respond.ErrorResponse
// @Router /players/{playerID}/career [get]
func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	h.serveCached(w, r, cache.CareerKey(id), "career_view", func() (any, time.Duration, error) {
		c, err := h.svc.CareerView(r.Context(), id)
		return c, cache.TTLCareer, err
	})
}

// GetLeaderboard ranks players by one career counter.
// @Summary Club leaderboard
// @Tags stats
// @Produce json
// @Param stat query string false "runs, wickets, catches or matches" default(runs)
// @Param limit query int false "Max rows (1-50)" default(10)
// @Success 200 {array} scoring.LeaderRow
// @Success 304
// @Failure 400 {object} respond.ErrorResponse
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	stat := scoring.LeaderStat(r.URL.Query().Get("stat"))
	if stat == "" {
		stat = scoring.LeaderRuns
	}
	limit := defaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, scoring.LeaderboardMax)
		}
	}
	h.serveCached(w, r, cache.LeaderboardKey(string(stat), limit), "leaders", func() (any, time.Duration, error) {
		rows, err := h.svc.Leaders(r.Context(), stat, limit)
		if rows == nil {
			rows = []scoring.LeaderRow{}
		}
		return rows, cache.TTLLeaderboard, err
	})
}
