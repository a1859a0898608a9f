package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"resourced/internal/shared/events"
)

// KafkaChannel is the outbound broker edge. Writes are async with a hash
// balancer, so a given key always lands on the same partition and per-resource
// event ordering survives the broker hop. Delivery failures surface in the
// completion callback and are only logged; the mutation that triggered the
// event has already committed.
type KafkaChannel struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaChannel(brokers []string, logger *slog.Logger) *KafkaChannel {
	if logger == nil {
		logger = slog.Default()
	}

	c := &KafkaChannel{logger: logger}
	c.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   c.logCompletion,
	}
	return c
}

func (c *KafkaChannel) Send(ctx context.Context, topic string, key string, event events.Envelope) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", event.ID, err)
	}
	return c.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (c *KafkaChannel) Close() error {
	return c.writer.Close()
}

func (c *KafkaChannel) logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, message := range messages {
		c.logger.Error("kafka delivery failed",
			"event", "kafka_delivery_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", message.Topic,
			"key", string(message.Key),
			"error", err.Error(),
		)
	}
}

// KafkaConsumer reads one partition at a time per group member, decodes each
// message into an envelope and hands it to the dispatcher. The offset is
// committed only after a successful dispatch. A failed envelope is retried in
// place with backoff: the consumer never fetches past it, because committing
// any later offset on the partition would move the group watermark beyond the
// failure and lose the envelope. A failing handler therefore stalls its
// partition; ordering per key stays meaningful.
type KafkaConsumer struct {
	reader      *kafka.Reader
	dispatcher  *events.Dispatcher
	logger      *slog.Logger
	baseBackoff time.Duration
}

func NewKafkaConsumer(brokers []string, topic string, group string, dispatcher *events.Dispatcher, logger *slog.Logger) *KafkaConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: group,
		}),
		dispatcher:  dispatcher,
		logger:      logger,
		baseBackoff: 500 * time.Millisecond,
	}
}

func (c *KafkaConsumer) Run(ctx context.Context) error {
	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		var envelope events.Envelope
		if err := json.Unmarshal(message.Value, &envelope); err != nil {
			c.logger.Error("malformed envelope, skipping",
				"event", "kafka_envelope_malformed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", message.Topic,
				"offset", message.Offset,
				"error", err.Error(),
			)
			if err := c.reader.CommitMessages(ctx, message); err != nil {
				return fmt.Errorf("commit malformed message: %w", err)
			}
			continue
		}

		if err := c.dispatchUntilHandled(ctx, envelope); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, message); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

// dispatchUntilHandled retries a failed envelope in place. The offset stays
// uncommitted the whole time, so a restart or rebalance re-fetches the same
// message.
func (c *KafkaConsumer) dispatchUntilHandled(ctx context.Context, envelope events.Envelope) error {
	backoff := c.baseBackoff
	for {
		err := c.dispatcher.Dispatch(ctx, envelope)
		if err == nil {
			return nil
		}

		c.logger.Warn("redelivering envelope after handler failure",
			"event", "kafka_redeliver",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_type", envelope.EventType,
			"event_id", envelope.ID,
			"backoff", backoff.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 16*c.baseBackoff {
			backoff *= 2
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
