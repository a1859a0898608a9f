package messaging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"resourced/internal/shared/events"
)

func TestConsumerRetriesFailedEnvelopeInPlace(t *testing.T) {
	dispatcher := events.NewDispatcher(nil)

	attempts := 0
	dispatcher.Register("resource.created", func(_ context.Context, _ events.Envelope) error {
		attempts++
		if attempts < 3 {
			return errors.New("projection store down")
		}
		return nil
	})

	consumer := &KafkaConsumer{
		dispatcher:  dispatcher,
		logger:      slog.Default(),
		baseBackoff: time.Millisecond,
	}

	envelope, err := events.New("resource.created", "resource-service", time.Now().UTC(), map[string]string{"id": "res_001"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}

	if err := consumer.dispatchUntilHandled(context.Background(), envelope); err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts for the same envelope, got %d", attempts)
	}
}

func TestConsumerKeepsFailedEnvelopeUntilCancelled(t *testing.T) {
	dispatcher := events.NewDispatcher(nil)

	attempts := 0
	dispatcher.Register("resource.created", func(_ context.Context, _ events.Envelope) error {
		attempts++
		return errors.New("projection store down")
	})

	consumer := &KafkaConsumer{
		dispatcher:  dispatcher,
		logger:      slog.Default(),
		baseBackoff: time.Millisecond,
	}

	envelope, err := events.New("resource.created", "resource-service", time.Now().UTC(), map[string]string{"id": "res_001"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = consumer.dispatchUntilHandled(ctx, envelope)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got %v", err)
	}
	// The consumer never gave up on the envelope: every attempt was a retry
	// of the same message, never a skip to the next offset.
	if attempts < 2 {
		t.Fatalf("expected repeated retries before cancellation, got %d", attempts)
	}
}
