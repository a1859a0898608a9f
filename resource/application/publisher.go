package application

import (
	"context"
	"log/slog"

	"resourced/internal/shared/events"
	"resourced/resource/ports"
)

// Publisher wraps domain events in envelopes and submits them to the
// outbound channel keyed by resource id. Publication is best-effort: the
// mutation has already committed when Publish runs, so a channel failure is
// logged and swallowed.
type Publisher struct {
	Channel ports.OutboundChannel
	Topic   string
	Source  string
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (p Publisher) Publish(ctx context.Context, eventType string, key string, payload any) {
	envelope, err := events.New(eventType, p.Source, p.Clock.Now().UTC(), payload)
	if err != nil {
		p.logger().Error("event envelope build failed",
			"event", "event_publish_failed",
			"module", "resource/application",
			"layer", "application",
			"topic", p.Topic,
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}

	if err := p.Channel.Send(ctx, p.Topic, key, envelope); err != nil {
		p.logger().Error("event publish failed",
			"event", "event_publish_failed",
			"module", "resource/application",
			"layer", "application",
			"topic", p.Topic,
			"event_type", eventType,
			"event_id", envelope.ID,
			"error", err.Error(),
		)
		return
	}

	p.logger().Info("event published",
		"event", "event_published",
		"module", "resource/application",
		"layer", "application",
		"topic", p.Topic,
		"event_type", eventType,
		"event_id", envelope.ID,
	)
}

func (p Publisher) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
