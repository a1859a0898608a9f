package ports

import (
	"context"
	"time"

	"resourced/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock shared by every wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Resource is the managed entity. Code is unique among stored resources and
// immutable after creation; UpdatedAt never decreases.
type Resource struct {
	ID          string
	Code        string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateResourceInput struct {
	Code        string
	Name        string
	Description string
}

// ResourceEventPayload is the data section of resource.created and
// resource.deleted envelopes.
type ResourceEventPayload struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Repository is the authoritative store. Create must enforce code uniqueness
// and report ErrCodeConflict on the losing writer of a racing insert.
type Repository interface {
	GetByID(ctx context.Context, id string) (Resource, error)
	GetByCode(ctx context.Context, code string) (Resource, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]Resource, error)
	ListByActive(ctx context.Context, active bool) ([]Resource, error)
	Create(ctx context.Context, resource Resource) error
	Delete(ctx context.Context, id string) error
}

// Cache is a single-process read accelerator keyed by resource id. It never
// loads on its own; the service populates it after a store read. Evict is
// idempotent.
type Cache interface {
	Get(id string) (Resource, bool)
	Put(id string, resource Resource)
	Evict(id string)
}

// EventEnvelope reuses the canonical wire envelope.
type EventEnvelope = events.Envelope

// OutboundChannel is the broker edge the publisher submits to. The key
// selects the partition, preserving per-resource event ordering.
type OutboundChannel interface {
	Send(ctx context.Context, topic string, key string, event EventEnvelope) error
}

// EventPublisher emits domain events best-effort: submission failures are
// logged, never surfaced to the mutation path.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any)
}
