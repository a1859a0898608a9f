package events

import (
	"context"
	"log/slog"
)

// HandlerFunc processes the decoded payload of one envelope. A returned error
// signals the inbound channel to redeliver, so handlers must tolerate being
// invoked more than once for the same envelope.
type HandlerFunc func(ctx context.Context, envelope Envelope) error

// Dispatcher routes inbound envelopes to the handler registered for their
// event type. The route table is resolved once at startup; Dispatch itself
// never retries.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a raw handler to an event type. Last registration wins.
func (d *Dispatcher) Register(eventType string, handler HandlerFunc) {
	d.handlers[eventType] = handler
}

// Handle registers a typed handler: the envelope data is decoded into T
// before fn runs. A decode failure is surfaced like a handler failure.
func Handle[T any](d *Dispatcher, eventType string, fn func(ctx context.Context, payload T) error) {
	d.Register(eventType, func(ctx context.Context, envelope Envelope) error {
		var payload T
		if err := envelope.DecodeData(&payload); err != nil {
			return err
		}
		return fn(ctx, payload)
	})
}

// Dispatch routes one envelope. Unknown event types are dropped with a
// warning; a shared topic carries types this service does not consume.
// Handler failures are returned to the caller for redelivery.
func (d *Dispatcher) Dispatch(ctx context.Context, envelope Envelope) error {
	handler, ok := d.handlers[envelope.EventType]
	if !ok {
		d.logger.Warn("no handler for event type, dropping envelope",
			"event", "dispatch_dropped",
			"module", "internal/shared/events",
			"layer", "shared",
			"event_type", envelope.EventType,
			"event_id", envelope.ID,
		)
		return nil
	}
	if err := handler(ctx, envelope); err != nil {
		d.logger.Error("event handler failed",
			"event", "dispatch_failed",
			"module", "internal/shared/events",
			"layer", "shared",
			"event_type", envelope.EventType,
			"event_id", envelope.ID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}
