package worker

import (
	"context"
	"log/slog"
	"time"

	"showcase/internal/shared/events"
)

// OutboxSource is the slice of a context repository the relay needs.
type OutboxSource interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]events.Envelope, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// OutboxRelay publishes persisted outbox rows to the event bus. Rows are
// marked published only after the publish succeeds, so a crashed cycle
// re-delivers rather than losing events.
type OutboxRelay struct {
	Name      string
	Outbox    OutboxSource
	Publisher Publisher
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce relays one bounded batch and stops on the first failure so the
// poll loop can retry the remaining rows.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := resolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "outbox_relay_list_failed",
			"module", "internal/app/worker",
			"layer", "worker",
			"relay", r.Name,
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, envelope := range pending {
		if err := r.Publisher.Publish(ctx, envelope.EventType, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_relay_publish_failed",
				"module", "internal/app/worker",
				"layer", "worker",
				"relay", r.Name,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, envelope.EventID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "outbox_relay_mark_failed",
				"module", "internal/app/worker",
				"layer", "worker",
				"relay", r.Name,
				"event_id", envelope.EventID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("outbox relay cycle completed",
		"event", "outbox_relay_completed",
		"module", "internal/app/worker",
		"layer", "worker",
		"relay", r.Name,
		"published_count", len(pending),
	)
	return nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
