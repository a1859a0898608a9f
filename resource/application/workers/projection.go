package workers

import (
	"context"
	"log/slog"
	"sync"

	"resourced/internal/shared/events"
	"resourced/resource/application"
	"resourced/resource/ports"
)

// Projection is a read model of live resources fed by the resource topic.
// Both handlers are idempotent upserts/deletes so at-least-once redelivery
// of the same envelope leaves no extra observable state.
type Projection struct {
	mu    sync.RWMutex
	items map[string]ports.ResourceEventPayload
}

func NewProjection() *Projection {
	return &Projection{items: make(map[string]ports.ResourceEventPayload)}
}

func (p *Projection) Get(id string) (ports.ResourceEventPayload, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	item, ok := p.items[id]
	return item, ok
}

func (p *Projection) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.items)
}

func (p *Projection) upsert(item ports.ResourceEventPayload) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items[item.ID] = item
}

func (p *Projection) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.items, id)
}

// ProjectionConsumer wires the projection handlers into a dispatcher.
type ProjectionConsumer struct {
	Projection *Projection
	Logger     *slog.Logger
}

// Register binds the consumer's handlers to the dispatcher route table.
// Registration happens once at startup, not per message.
func (c ProjectionConsumer) Register(dispatcher *events.Dispatcher) {
	events.Handle(dispatcher, application.EventResourceCreated, c.handleResourceCreated)
	events.Handle(dispatcher, application.EventResourceDeleted, c.handleResourceDeleted)
}

func (c ProjectionConsumer) handleResourceCreated(ctx context.Context, payload ports.ResourceEventPayload) error {
	c.Projection.upsert(payload)
	c.logger().Info("resource projected",
		"event", "projection_upsert",
		"module", "resource/application/workers",
		"layer", "application",
		"resource_id", payload.ID,
		"code", payload.Code,
	)
	return nil
}

func (c ProjectionConsumer) handleResourceDeleted(ctx context.Context, payload ports.ResourceEventPayload) error {
	c.Projection.remove(payload.ID)
	c.logger().Info("resource removed from projection",
		"event", "projection_remove",
		"module", "resource/application/workers",
		"layer", "application",
		"resource_id", payload.ID,
	)
	return nil
}

func (c ProjectionConsumer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
