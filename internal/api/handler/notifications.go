package handler

import (
	"net/http"
	"strconv"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/notifications"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// GetNotifications returns the acting player's unread notifications.
// @Summary Unread notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "Max rows (1-200)" default(50)
// @Success 200 {array} notifications.Notification
// @Failure 403 {object} respond.ErrorResponse
// @Router /notifications [get]
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	if a.PlayerID == nil {
		respond.WriteServiceError(w, scoring.ErrNotAllowed)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.inbox.Unread(r.Context(), *a.PlayerID, limit)
	if err != nil {
		h.fail(w, r, "unread_notifications", err)
		return
	}
	if items == nil {
		items = []notifications.Notification{}
	}
	respond.WriteJSONObject(w, http.StatusOK, items)
}

// MarkNotificationRead marks one of the acting player's notifications read.
// @Summary Mark notification read
// @Tags notifications
// @Param notificationID path int true "Notification ID"
// @Success 204
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /notifications/{notificationID}/read [post]
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notificationID")
	if !ok {
		return
	}
	a := actor(r)
	if a.PlayerID == nil {
		respond.WriteServiceError(w, scoring.ErrNotAllowed)
		return
	}
	if err := h.inbox.MarkRead(r.Context(), *a.PlayerID, id); err != nil {
		h.fail(w, r, "mark_notification_read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
