package notifications

import (
	"context"
	"log/slog"

	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// Notifier queues approvals and writes their notifications on a background
// worker. It implements scoring.Publisher.
type Notifier struct {
	src    Source
	w      Writer
	queue  chan scoring.Approval
	logger *slog.Logger
}

// NewNotifier creates a Notifier. Call StartWorker to drain it.
func NewNotifier(src Source, w Writer, logger *slog.Logger) *Notifier {
	return &Notifier{
		src:    src,
		w:      w,
		queue:  make(chan scoring.Approval, queueSize),
		logger: logger,
	}
}

// Publish queues approval events. Other events are ignored. A full queue
// drops the event.
func (n *Notifier) Publish(_ context.Context, e scoring.Event) {
	if e.Type != scoring.EventMatchApproved || e.Approval == nil {
		return
	}
	select {
	case n.queue <- *e.Approval:
	default:
		n.logger.Warn("Notification queue full, dropping approval", "match_id", e.MatchID)
	}
}

// StartWorker writes queued notifications until ctx is cancelled. Blocks;
// intended to be called with `go`.
func (n *Notifier) StartWorker(ctx context.Context) {
	n.logger.Info("Notification worker started")
	for {
		select {
		case a := <-n.queue:
			if err := Run(ctx, n.src, n.w, a, n.logger); err != nil {
				n.logger.Error("Approval notifications failed", "match_id", a.MatchID, "error", err)
			}
		case <-ctx.Done():
			n.logger.Info("Notification worker stopped", "dropped", len(n.queue))
			return
		}
	}
}
