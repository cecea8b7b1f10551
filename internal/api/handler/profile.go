package handler

import (
	"net/http"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/roster"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// UpdateProfile updates a player's profile, re-deriving age and batch.
// @Summary Update player profile
// @Description A player may edit their own profile; a coach may edit any.
// @Tags roster
// @Accept json
// @Produce json
// @Param playerID path int true "Player ID"
// @Param profile body roster.Profile true "Profile fields"
// @Success 200 {object} roster.Player
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID}/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	a := actor(r)
	if !a.IsCoach() && (a.PlayerID == nil || *a.PlayerID != id) {
		respond.WriteServiceError(w, scoring.ErrNotAllowed)
		return
	}
	var p roster.Profile
	if !decodeJSON(w, r, &p) {
		return
	}
	player, err := h.roster.UpdateProfile(r.Context(), id, p)
	if err != nil {
		h.fail(w, r, "update_profile", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, player)
}

// ApprovePlayer activates a pending player and assigns their batch.
// @Summary Approve player
// @Tags roster
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} roster.Player
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID}/approve [post]
func (h *Handler) ApprovePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	if !actor(r).IsCoach() {
		respond.WriteServiceError(w, scoring.ErrNotCoach)
		return
	}
	player, err := h.roster.ApprovePlayer(r.Context(), id)
	if err != nil {
		h.fail(w, r, "approve_player", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, player)
}
