package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/cache"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// SubmitManualScore replaces the match's manual scores.
// @Summary Submit manual scores
// @Description Full replace: every earlier row for the match is removed. Moves the match to pending_approval.
// @Tags scoring
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param payload body scoring.ManualPayload true "Batting, bowling, fielding, wagon wheel and summaries"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /matches/{matchID}/manual-score [post]
func (h *Handler) SubmitManualScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	p, err := scoring.DecodeManualPayload(body)
	if err != nil {
		h.fail(w, r, "submit_manual_score", err)
		return
	}
	if err := h.svc.SubmitManualScore(r.Context(), id, actor(r), p); err != nil {
		h.fail(w, r, "submit_manual_score", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"match_id": id,
		"status":   scoring.StatusPendingApproval,
	})
}

// AppendBall records one live delivery.
// @Summary Add live ball
// @Tags scoring
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param ball body scoring.BallEvent true "Delivery"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 403 {object} respond.ErrorResponse
// @Router /matches/{matchID}/balls [post]
func (h *Handler) AppendBall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	e, err := scoring.DecodeBallEvent(body)
	if err != nil {
		h.fail(w, r, "append_live_ball", err)
		return
	}
	ballID, err := h.svc.AppendLiveBall(r.Context(), id, actor(r), e)
	if err != nil {
		h.fail(w, r, "append_live_ball", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"id": ballID,
	})
}

// ListBalls returns the ball ledger in delivery order.
// @Summary List live balls
// @Tags scoring
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {array} scoring.LiveBall
// @Router /matches/{matchID}/balls [get]
func (h *Handler) ListBalls(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	balls, err := h.svc.ListBalls(r.Context(), id)
	if err != nil {
		h.fail(w, r, "list_balls", err)
		return
	}
	if balls == nil {
		balls = []scoring.LiveBall{}
	}
	respond.WriteJSONObject(w, http.StatusOK, balls)
}

// GetNextBall suggests the next (over, ball) for the live scorer.
// @Summary Next ball pointer
// @Tags scoring
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} scoring.BallPointer
// @Router /matches/{matchID}/next-ball [get]
func (h *Handler) GetNextBall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	p, err := h.svc.NextBallPointer(r.Context(), id)
	if err != nil {
		h.fail(w, r, "next_ball", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}

// GetReport returns the derived match report.
// @Summary Match report
// @Description Batting, bowling and fielding summaries, fall of wickets, result and coaching suggestions.
// @Tags scoring
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} scoring.Report
// @Success 304
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID}/report [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "matchID")
	if !ok {
		return
	}
	h.serveCached(w, r, cache.ReportKey(id), "build_match_report", func() (any, time.Duration, error) {
		rep, err := h.svc.BuildMatchReport(r.Context(), id)
		if err != nil {
			return nil, 0, err
		}
		ttl := cache.TTLLiveReport
		if rep.Match.Status == scoring.StatusCompleted {
			ttl = cache.TTLFinalReport
		}
		return rep, ttl, nil
	})
}
