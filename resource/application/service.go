package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "resourced/resource/domain/errors"
	"resourced/resource/ports"
)

const (
	EventResourceCreated = "resource.created"
	EventResourceDeleted = "resource.deleted"
)

// Service is the sole mutator/reader path that keeps the store, the read
// cache, and the outbound event stream consistent.
type Service struct {
	Repo   ports.Repository
	Cache  ports.Cache
	Events ports.EventPublisher
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

// GetByID serves from cache when possible; on a miss it reads the store and
// populates the cache only on the success path.
func (s Service) GetByID(ctx context.Context, id string) (ports.Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ports.Resource{}, domainerrors.ErrInvalidRequest
	}

	if item, ok := s.Cache.Get(id); ok {
		return item, nil
	}

	item, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ports.Resource{}, err
	}
	s.Cache.Put(id, item)
	return item, nil
}

// GetByCode always reads the store; code lookups have no cache path.
func (s Service) GetByCode(ctx context.Context, code string) (ports.Resource, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ports.Resource{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetByCode(ctx, code)
}

func (s Service) List(ctx context.Context) ([]ports.Resource, error) {
	return s.Repo.List(ctx)
}

func (s Service) ListByActive(ctx context.Context, active bool) ([]ports.Resource, error) {
	return s.Repo.ListByActive(ctx, active)
}

// Create inserts a new resource and emits resource.created. The exists
// precheck and the insert are not atomic; the store's unique constraint
// decides racing creates and the losing writer maps to the same conflict.
func (s Service) Create(ctx context.Context, input ports.CreateResourceInput) (ports.Resource, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return ports.Resource{}, domainerrors.ErrInvalidRequest
	}

	s.logger().Info("creating resource",
		"event", "resource_create",
		"module", "resource/application",
		"layer", "application",
		"code", code,
	)

	exists, err := s.Repo.ExistsByCode(ctx, code)
	if err != nil {
		return ports.Resource{}, err
	}
	if exists {
		return ports.Resource{}, domainerrors.ErrCodeConflict
	}

	id, err := s.IDs.NewID(ctx)
	if err != nil {
		return ports.Resource{}, err
	}

	now := s.Clock.Now().UTC()
	item := ports.Resource{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return ports.Resource{}, err
	}

	s.Events.Publish(ctx, EventResourceCreated, item.ID, ports.ResourceEventPayload{
		ID:   item.ID,
		Code: item.Code,
		Name: item.Name,
	})
	return item, nil
}

// Delete removes the resource from the store, then evicts the cache entry so
// a reader racing the delete either sees bounded-stale state or misses. The
// eviction happens only after the store delete commits; a deleted entry is
// never resurrected into the cache.
func (s Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domainerrors.ErrInvalidRequest
	}

	item, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Evict(id)

	s.logger().Info("resource deleted",
		"event", "resource_deleted",
		"module", "resource/application",
		"layer", "application",
		"resource_id", id,
	)

	s.Events.Publish(ctx, EventResourceDeleted, item.ID, ports.ResourceEventPayload{
		ID:   item.ID,
		Code: item.Code,
		Name: item.Name,
	})
	return nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
