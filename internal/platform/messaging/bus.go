package messaging

import (
	"context"
	"log/slog"
	"sync"

	"resourced/internal/shared/events"
)

type busMessage struct {
	key      string
	envelope events.Envelope
}

// Bus is an in-process publish/subscribe channel used for brokerless runs
// and tests. Each subscriber consumes its channel sequentially, so envelope
// order per subscriber matches submission order.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan busMessage
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan busMessage),
		logger:      logger,
	}
}

func (b *Bus) Send(ctx context.Context, topic string, key string, event events.Envelope) error {
	b.mu.RLock()
	subs := append([]chan busMessage(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- busMessage{key: key, envelope: event}:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.ID,
			)
		}
	}
	return nil
}

// Subscribe routes every envelope on topic through the dispatcher. A failed
// dispatch is redelivered once before the envelope is dropped; the real
// broker path leaves redelivery to the consumer group instead.
func (b *Bus) Subscribe(ctx context.Context, topic string, dispatcher *events.Dispatcher) {
	ch := make(chan busMessage, 128)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, ch)
				return
			case message := <-ch:
				if err := dispatcher.Dispatch(ctx, message.envelope); err != nil {
					if err := dispatcher.Dispatch(ctx, message.envelope); err != nil {
						b.logger.Error("envelope dropped after redelivery",
							"event", "bus_envelope_dropped",
							"module", "internal/platform/messaging",
							"layer", "platform",
							"topic", topic,
							"event_id", message.envelope.ID,
							"event_type", message.envelope.EventType,
							"error", err.Error(),
						)
					}
				}
			}
		}
	}()
}

func (b *Bus) removeSubscriber(topic string, target chan busMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan busMessage, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}
