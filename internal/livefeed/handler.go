package livefeed

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
)

// Handler upgrades viewers onto the hub.
type Handler struct {
	hub      *Hub
	ctx      context.Context
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler. Client pumps run on ctx rather than the
// request context so they outlive the upgrade request. An empty origins list
// or "*" accepts any origin.
func NewHandler(ctx context.Context, hub *Hub, origins []string) *Handler {
	return &Handler{
		hub: hub,
		ctx: ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 ||
					slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
	}
}

// Watch handles GET /ws/matches/{matchID}.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.ParseInt(chi.URLParam(r, "matchID"), 10, 64)
	if err != nil || matchID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Match ID must be a positive integer")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.hub.logger.Debug("Live feed upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.NewString(), matchID, conn, h.hub, h.hub.logger)
	h.hub.Register(c)

	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}

// Metrics handles GET /ws/metrics.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.hub.Metrics())
}
