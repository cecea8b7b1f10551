package handler

import (
	"net/http"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// CreateMatch creates a match scored by the acting coach or a chosen player.
// @Summary Create match
// @Tags matches
// @Accept json
// @Produce json
// @Param match body scoring.NewMatch true "Match details"
// @Success 201 {object} scoring.Match
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var in scoring.NewMatch
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.svc.CreateMatch(r.Context(), actor(r), in)
	if err != nil {
		h.fail(w, r, "create_match", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, m)
}

// GetMatch returns a match.
// @Summary Get match
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} scoring.Match
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	m, err := h.svc.GetMatch(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get_match", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, m)
}

type inningsRequest struct {
	BattingSide string `json:"batting_side"`
}

// StartInnings advances the match to its next innings.
// @Summary Start next innings
// @Description Advances current_innings, clamped at 2, and stamps the batting side.
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param innings body inningsRequest true "Batting side (team or opponent)"
// @Success 200 {object} scoring.Match
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /matches/{matchID}/innings/start [post]
func (h *Handler) StartInnings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	var req inningsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.svc.StartInnings(r.Context(), id, actor(r), req.BattingSide)
	if err != nil {
		h.fail(w, r, "start_innings", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, m)
}

// EndInnings stamps the innings completion time.
// @Summary End innings
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} scoring.Match
// @Failure 403 {object} respond.ErrorResponse
// @Router /matches/{matchID}/innings/end [post]
func (h *Handler) EndInnings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	m, err := h.svc.EndInnings(r.Context(), id, actor(r))
	if err != nil {
		h.fail(w, r, "end_innings", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, m)
}

type resultRequest struct {
	Result string `json:"result"`
}

// UpdateResult overrides the free-text result.
// @Summary Update match result
// @Tags matches
// @Accept json
// @Param matchID path int true "Match ID"
// @Param result body resultRequest true "Result text"
// @Success 204
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /matches/{matchID}/result [put]
func (h *Handler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	var req resultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.UpdateResult(r.Context(), id, actor(r), req.Result); err != nil {
		h.fail(w, r, "update_result", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectSquad replaces the match squad and opponent players.
// @Summary Select squad
// @Tags matches
// @Accept json
// @Param matchID path int true "Match ID"
// @Param squad body scoring.Squad true "Selected player ids and opponent players"
// @Success 204
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Router /matches/{matchID}/squad [put]
func (h *Handler) SelectSquad(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	var sq scoring.Squad
	if !decodeJSON(w, r, &sq) {
		return
	}
	if err := h.svc.SelectSquad(r.Context(), id, actor(r), sq); err != nil {
		h.fail(w, r, "select_squad", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAllowedPlayers lists players a scorer may enter rows for.
// @Summary Players available for scoring
// @Description The selected squad, or every approved player when no squad was selected.
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {array} roster.Player
// @Router /matches/{matchID}/players [get]
func (h *Handler) GetAllowedPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	players, err := h.roster.AllowedPlayers(r.Context(), id)
	if err != nil {
		h.fail(w, r, "allowed_players", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, players)
}

// ApproveMatch folds the match's manual scores into career stats.
// @Summary Approve match
// @Description Coach only. Valid once per match, from pending_approval.
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} scoring.Approval
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /matches/{matchID}/approve [post]
func (h *Handler) ApproveMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	a, err := h.svc.ApproveMatch(r.Context(), id, actor(r))
	if err != nil {
		h.fail(w, r, "approve_match", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, a)
}
