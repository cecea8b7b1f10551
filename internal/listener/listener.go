// Package listener relays committed match events between processes over
// Postgres LISTEN/NOTIFY on the `match_events` channel.
//
// Every process publishes its own events locally. A Notifier additionally
// broadcasts a compact envelope with pg_notify; the consumer started by
// Start in every API instance replays envelopes from other processes (other
// API replicas, the admin CLI) into local sinks such as the response cache
// and the live feed. Envelopes carry the emitting instance's origin so a
// process never replays its own events.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

const (
	// Channel is the NOTIFY channel name.
	Channel = "match_events"

	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
	notifyTimeout    = 2 * time.Second
)

// Envelope is the JSON payload of a match_events notification. NOTIFY
// payloads are capped at 8000 bytes, so approvals carry player ids rather
// than full deltas.
type Envelope struct {
	Origin    string            `json:"origin"`
	Type      scoring.EventType `json:"type"`
	MatchID   int64             `json:"match_id"`
	Status    scoring.Status    `json:"status,omitempty"`
	PlayerIDs []int64           `json:"player_ids,omitempty"`
	Timestamp int64             `json:"ts"`
}

// Encode builds the envelope for e.
func Encode(origin string, e scoring.Event, now time.Time) Envelope {
	env := Envelope{
		Origin:    origin,
		Type:      e.Type,
		MatchID:   e.MatchID,
		Status:    e.Status,
		Timestamp: now.Unix(),
	}
	if e.Approval != nil {
		for _, d := range e.Approval.Deltas {
			env.PlayerIDs = append(env.PlayerIDs, d.PlayerID)
		}
	}
	return env
}

// Event rebuilds the event an envelope describes. Approvals come back with
// one empty delta per player, which is enough for invalidation but not for
// notifications.
func (env Envelope) Event() scoring.Event {
	e := scoring.Event{Type: env.Type, MatchID: env.MatchID, Status: env.Status}
	if env.Type == scoring.EventMatchApproved {
		a := &scoring.Approval{MatchID: env.MatchID}
		for _, id := range env.PlayerIDs {
			a.Deltas = append(a.Deltas, scoring.Delta{PlayerID: id})
		}
		e.Approval = a
	}
	return e
}

// Execer is satisfied by pgxpool.Pool and pgx.Conn.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Notifier broadcasts committed events with pg_notify. It implements
// scoring.Publisher.
type Notifier struct {
	db     Execer
	origin string
	logger *slog.Logger
}

// NewNotifier creates a Notifier that tags envelopes with origin.
func NewNotifier(db Execer, origin string, logger *slog.Logger) *Notifier {
	return &Notifier{db: db, origin: origin, logger: logger}
}

// Publish sends e on the channel. Failures are logged; other processes then
// fall back to cache TTLs.
func (n *Notifier) Publish(ctx context.Context, e scoring.Event) {
	payload, err := json.Marshal(Encode(n.origin, e, time.Now()))
	if err != nil {
		n.logger.Warn("Failed to encode match event", "match_id", e.MatchID, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if _, err := n.db.Exec(ctx, "SELECT pg_notify($1, $2)", Channel, string(payload)); err != nil {
		n.logger.Warn("pg_notify failed", "match_id", e.MatchID, "type", e.Type, "error", err)
	}
}

// Start opens a dedicated connection and listens on the match_events
// channel, replaying other origins' events into sink. It reconnects
// automatically on connection loss. Blocks until ctx is cancelled. Intended
// to be called with `go`.
func Start(ctx context.Context, dbURL, origin string, sink scoring.Publisher, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, origin, sink, logger)
		if ctx.Err() != nil {
			logger.Info("Match event listener stopped (context cancelled)")
			return
		}

		logger.Error("Match event listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL, origin string, sink scoring.Publisher, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+Channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	logger.Info("Match event listener connected", "channel", Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		relay(ctx, notification.Payload, origin, sink, logger)
	}
}

// relay decodes one payload and forwards it to sink unless it came from
// this process.
func relay(ctx context.Context, payload, origin string, sink scoring.Publisher, logger *slog.Logger) bool {
	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		logger.Warn("Failed to parse match event", "payload", payload, "error", err)
		return false
	}
	if env.Origin == origin {
		return false
	}

	logger.Debug("Match event received",
		"origin", env.Origin,
		"type", env.Type,
		"match_id", env.MatchID)

	sink.Publish(ctx, env.Event())
	return true
}
