// Package livefeed broadcasts committed match events to websocket viewers.
//
// A Hub owns the set of connected viewers. Each viewer watches one match;
// events for other matches are not delivered to it. Slow viewers whose send
// buffer fills up are disconnected rather than allowed to stall the hub.
package livefeed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Message is what viewers receive.
type Message struct {
	Type      scoring.EventType `json:"type"`
	MatchID   int64             `json:"match_id"`
	Payload   scoring.Event     `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// Hub tracks viewers and fans events out to them. It implements
// scoring.Publisher.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan scoring.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *slog.Logger

	metricsMu        sync.Mutex
	totalConnections int64
	totalMessages    int64
	dropped          int64
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan scoring.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub loop. It returns when ctx is cancelled, closing every
// viewer's send channel.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Live feed hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case e := <-h.broadcast:
			h.broadcastEvent(e)
		}
	}
}

// Register adds a viewer. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a viewer and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues a committed event for broadcast. When the queue is full the
// event is dropped; viewers can reload match state over HTTP.
func (h *Hub) Publish(_ context.Context, e scoring.Event) {
	select {
	case h.broadcast <- e:
	default:
		h.logger.Warn("Live feed buffer full, dropping event",
			"match_id", e.MatchID, "type", e.Type)
	}
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.clientsMu.Unlock()

	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	h.logger.Debug("Live feed viewer connected", "client_id", c.ID, "match_id", c.MatchID, "total", n)
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		h.logger.Debug("Live feed viewer disconnected", "client_id", c.ID, "total", len(h.clients))
	}
}

func (h *Hub) broadcastEvent(e scoring.Event) {
	h.clientsMu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.MatchID == e.MatchID {
			targets = append(targets, c)
		}
	}
	h.clientsMu.RUnlock()

	if len(targets) == 0 {
		return
	}

	msg := Message{Type: e.Type, MatchID: e.MatchID, Payload: e, Timestamp: time.Now().UTC()}
	var sent, dropped int64
	for _, c := range targets {
		if c.TrySend(msg) {
			sent++
			continue
		}
		dropped++
		h.logger.Warn("Live feed viewer too slow, disconnecting", "client_id", c.ID)
		go h.Unregister(c)
	}

	h.metricsMu.Lock()
	h.totalMessages += sent
	h.dropped += dropped
	h.metricsMu.Unlock()
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.Info("Live feed hub stopping", "clients", len(h.clients))
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}

// Metrics is a snapshot of hub counters.
type Metrics struct {
	ActiveClients    int   `json:"active_clients"`
	TotalConnections int64 `json:"total_connections"`
	TotalMessages    int64 `json:"total_messages"`
	Dropped          int64 `json:"dropped"`
	QueueCapacity    int   `json:"queue_capacity"`
	QueueUsage       int   `json:"queue_usage"`
}

func (h *Hub) Metrics() Metrics {
	h.clientsMu.RLock()
	active := len(h.clients)
	h.clientsMu.RUnlock()

	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()
	return Metrics{
		ActiveClients:    active,
		TotalConnections: h.totalConnections,
		TotalMessages:    h.totalMessages,
		Dropped:          h.dropped,
		QueueCapacity:    cap(h.broadcast),
		QueueUsage:       len(h.broadcast),
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}
