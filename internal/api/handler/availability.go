package handler

import (
	"net/http"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/availability"
)

type respondRequest struct {
	Status availability.Status `json:"status"`
}

// CreatePoll opens a pre-match availability poll.
// @Summary Open availability poll
// @Description Coach only. Every approved player is notified.
// @Tags availability
// @Accept json
// @Produce json
// @Param poll body availability.NewPoll true "Fixture details"
// @Success 201 {object} availability.Poll
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Router /availability [post]
func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var in availability.NewPoll
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.polls.CreatePoll(r.Context(), actor(r), in)
	if err != nil {
		h.fail(w, r, "create_poll", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, p)
}

// GetPollSummary returns a poll with its responses.
// @Summary Availability summary
// @Tags availability
// @Produce json
// @Param pollID path int true "Poll ID"
// @Success 200 {object} availability.Summary
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /availability/{pollID} [get]
func (h *Handler) GetPollSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "pollID")
	if !ok {
		return
	}
	sum, err := h.polls.Summary(r.Context(), id, actor(r))
	if err != nil {
		h.fail(w, r, "poll_summary", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, sum)
}

// RespondToPoll records the acting player's answer.
// @Summary Answer availability poll
// @Description status is available, unavailable or later (at most 3 times).
// @Tags availability
// @Accept json
// @Produce json
// @Param pollID path int true "Poll ID"
// @Param answer body handler.respondRequest true "Answer"
// @Success 200 {object} availability.Response
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /availability/{pollID}/respond [post]
func (h *Handler) RespondToPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "pollID")
	if !ok {
		return
	}
	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.polls.Respond(r.Context(), id, actor(r), req.Status)
	if err != nil {
		h.fail(w, r, "respond_poll", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, resp)
}

// FinalizePoll closes a poll and selects the available players as the
// linked match's squad.
// @Summary Finalize availability poll
// @Tags availability
// @Accept json
// @Produce json
// @Param pollID path int true "Poll ID"
// @Param finalize body availability.Finalize false "Opponent players kept with the squad"
// @Success 200 {object} availability.Summary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /availability/{pollID}/finalize [post]
func (h *Handler) FinalizePoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "pollID")
	if !ok {
		return
	}
	var f availability.Finalize
	if !decodeJSON(w, r, &f) {
		return
	}
	sum, err := h.polls.Finalize(r.Context(), id, actor(r), f)
	if err != nil {
		h.fail(w, r, "finalize_poll", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, sum)
}
