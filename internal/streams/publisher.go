// Package streams appends committed match events to a Redis stream so other
// services can consume them.
package streams

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

const (
	publishTimeout = 2 * time.Second

	// DefaultMaxLen is the approximate stream length kept by cmd/api.
	DefaultMaxLen = 10000
)

// adder is the subset of *redis.Client the publisher uses.
type adder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher writes events to one stream. It implements scoring.Publisher.
type Publisher struct {
	client adder
	stream string
	maxLen int64
	logger *slog.Logger
}

// New creates a Publisher on stream. The stream is trimmed approximately to
// maxLen entries; zero disables trimming.
func New(client *redis.Client, stream string, maxLen int64, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, stream: stream, maxLen: maxLen, logger: logger}
}

// Append writes e to the stream and returns the entry id.
func (p *Publisher) Append(ctx context.Context, e scoring.Event) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]interface{}{
			"event_id": uuid.NewString(),
			"type":     string(e.Type),
			"match_id": strconv.FormatInt(e.MatchID, 10),
			"data":     string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return id, nil
}

// Publish appends e, logging failures. The write is detached from the
// caller's cancellation so a finished request does not abort it.
func (p *Publisher) Publish(ctx context.Context, e scoring.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if _, err := p.Append(ctx, e); err != nil {
		p.logger.Warn("Event stream publish failed",
			"stream", p.stream, "match_id", e.MatchID, "type", e.Type, "error", err)
	}
}
