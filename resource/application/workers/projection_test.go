package workers

import (
	"context"
	"testing"
	"time"

	"resourced/internal/shared/events"
	"resourced/resource/application"
	"resourced/resource/ports"
)

func resourceEnvelope(t *testing.T, eventType string, payload ports.ResourceEventPayload) events.Envelope {
	t.Helper()
	envelope, err := events.New(eventType, "resource-service", time.Now().UTC(), payload)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func TestDoubleDeliveryOfCreatedIsIdempotent(t *testing.T) {
	projection := NewProjection()
	dispatcher := events.NewDispatcher(nil)
	ProjectionConsumer{Projection: projection}.Register(dispatcher)

	envelope := resourceEnvelope(t, application.EventResourceCreated, ports.ResourceEventPayload{
		ID:   "res_001",
		Code: "EX1",
		Name: "First",
	})

	for i := 0; i < 2; i++ {
		if err := dispatcher.Dispatch(context.Background(), envelope); err != nil {
			t.Fatalf("dispatch %d failed: %v", i+1, err)
		}
	}

	if projection.Len() != 1 {
		t.Fatalf("expected one projected resource, got %d", projection.Len())
	}
	item, ok := projection.Get("res_001")
	if !ok || item.Code != "EX1" {
		t.Fatalf("unexpected projection entry: %+v ok=%v", item, ok)
	}
}

func TestDoubleDeliveryOfDeletedIsIdempotent(t *testing.T) {
	projection := NewProjection()
	dispatcher := events.NewDispatcher(nil)
	ProjectionConsumer{Projection: projection}.Register(dispatcher)

	created := resourceEnvelope(t, application.EventResourceCreated, ports.ResourceEventPayload{
		ID:   "res_001",
		Code: "EX1",
		Name: "First",
	})
	if err := dispatcher.Dispatch(context.Background(), created); err != nil {
		t.Fatalf("dispatch created failed: %v", err)
	}

	deleted := resourceEnvelope(t, application.EventResourceDeleted, ports.ResourceEventPayload{
		ID:   "res_001",
		Code: "EX1",
		Name: "First",
	})
	for i := 0; i < 2; i++ {
		if err := dispatcher.Dispatch(context.Background(), deleted); err != nil {
			t.Fatalf("dispatch deleted %d failed: %v", i+1, err)
		}
	}

	if projection.Len() != 0 {
		t.Fatalf("expected empty projection, got %d entries", projection.Len())
	}
}
