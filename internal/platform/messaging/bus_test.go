package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"resourced/internal/shared/events"
)

func TestBusDeliversEnvelopesToDispatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewBus(nil)
	dispatcher := events.NewDispatcher(nil)

	received := make(chan events.Envelope, 1)
	dispatcher.Register("resource.created", func(_ context.Context, envelope events.Envelope) error {
		received <- envelope
		return nil
	})
	bus.Subscribe(ctx, "resource.events", dispatcher)

	envelope, err := events.New("resource.created", "resource-service", time.Now().UTC(), map[string]string{"id": "res_001"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := bus.Send(ctx, "resource.events", "res_001", envelope); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case got := <-received:
		if got.ID != envelope.ID {
			t.Fatalf("expected envelope %s, got %s", envelope.ID, got.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("envelope not delivered")
	}
}

func TestBusRedeliversOnceOnHandlerFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewBus(nil)
	dispatcher := events.NewDispatcher(nil)

	attempts := make(chan int, 2)
	calls := 0
	dispatcher.Register("resource.created", func(_ context.Context, _ events.Envelope) error {
		calls++
		attempts <- calls
		if calls == 1 {
			return errors.New("transient failure")
		}
		return nil
	})
	bus.Subscribe(ctx, "resource.events", dispatcher)

	envelope, err := events.New("resource.created", "resource-service", time.Now().UTC(), map[string]string{"id": "res_001"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := bus.Send(ctx, "resource.events", "res_001", envelope); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	for want := 1; want <= 2; want++ {
		select {
		case got := <-attempts:
			if got != want {
				t.Fatalf("expected attempt %d, got %d", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("attempt %d never happened", want)
		}
	}
}

func TestBusIgnoresTopicsWithoutSubscribers(t *testing.T) {
	bus := NewBus(nil)

	envelope, err := events.New("resource.created", "resource-service", time.Now().UTC(), map[string]string{"id": "res_001"})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := bus.Send(context.Background(), "unknown.topic", "res_001", envelope); err != nil {
		t.Fatalf("send to topic without subscribers must not error: %v", err)
	}
}
