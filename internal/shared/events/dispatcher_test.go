package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testPayload struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func createdEnvelope(t *testing.T) Envelope {
	t.Helper()
	envelope, err := New("resource.created", "resource-service", time.Now().UTC(), testPayload{
		ID:   "res_001",
		Code: "EX1",
		Name: "First",
	})
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	return envelope
}

func TestNewEnvelopeStampsProtocolMetadata(t *testing.T) {
	envelope := createdEnvelope(t)

	if envelope.SpecVersion != SpecVersion {
		t.Fatalf("expected specversion %s, got %s", SpecVersion, envelope.SpecVersion)
	}
	if envelope.DataContentType != ContentTypeJSON {
		t.Fatalf("expected content type %s, got %s", ContentTypeJSON, envelope.DataContentType)
	}
	if envelope.ID == "" {
		t.Fatal("expected generated envelope id")
	}

	other := createdEnvelope(t)
	if other.ID == envelope.ID {
		t.Fatal("expected unique envelope ids")
	}
}

func TestDispatchRoutesToRegisteredHandler(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	var received testPayload
	Handle(dispatcher, "resource.created", func(_ context.Context, payload testPayload) error {
		received = payload
		return nil
	})

	if err := dispatcher.Dispatch(context.Background(), createdEnvelope(t)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if received.Code != "EX1" || received.ID != "res_001" {
		t.Fatalf("handler saw wrong payload: %+v", received)
	}
}

func TestDispatchDropsUnknownEventType(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	invoked := false
	Handle(dispatcher, "resource.created", func(_ context.Context, _ testPayload) error {
		invoked = true
		return nil
	})

	envelope := createdEnvelope(t)
	envelope.EventType = "billing.invoiced"
	if err := dispatcher.Dispatch(context.Background(), envelope); err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if invoked {
		t.Fatal("handler invoked for unknown event type")
	}
}

func TestDispatchPropagatesHandlerFailure(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	handlerErr := errors.New("projection store down")
	Handle(dispatcher, "resource.created", func(_ context.Context, _ testPayload) error {
		return handlerErr
	})

	if err := dispatcher.Dispatch(context.Background(), createdEnvelope(t)); !errors.Is(err, handlerErr) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
}

func TestDispatchSurfacesDecodeFailure(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	Handle(dispatcher, "resource.created", func(_ context.Context, _ testPayload) error {
		t.Fatal("handler must not run on decode failure")
		return nil
	})

	envelope := createdEnvelope(t)
	envelope.Data = []byte(`"not an object"`)
	if err := dispatcher.Dispatch(context.Background(), envelope); err == nil {
		t.Fatal("expected decode failure to surface")
	}
}
