package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainerrors "resourced/resource/domain/errors"
	"resourced/resource/ports"
)

// Store is the in-memory repository used by tests and brokerless dev wiring.
// It enforces code uniqueness at the store level, like the postgres adapter,
// so the losing writer of a racing create gets a conflict.
type Store struct {
	mu           sync.RWMutex
	resourceByID map[string]ports.Resource
	idByCode     map[string]string
}

func NewStore() *Store {
	return &Store{
		resourceByID: make(map[string]ports.Resource),
		idByCode:     make(map[string]string),
	}
}

func (s *Store) GetByID(ctx context.Context, id string) (ports.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.resourceByID[strings.TrimSpace(id)]
	if !ok {
		return ports.Resource{}, domainerrors.ErrResourceNotFound
	}
	return item, nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (ports.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idByCode[strings.TrimSpace(code)]
	if !ok {
		return ports.Resource{}, domainerrors.ErrResourceNotFound
	}
	return s.resourceByID[id], nil
}

func (s *Store) ExistsByCode(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.idByCode[strings.TrimSpace(code)]
	return ok, nil
}

func (s *Store) List(ctx context.Context) ([]ports.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Resource, 0, len(s.resourceByID))
	for _, item := range s.resourceByID {
		items = append(items, item)
	}
	sortByCreatedAt(items)
	return items, nil
}

func (s *Store) ListByActive(ctx context.Context, active bool) ([]ports.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []ports.Resource
	for _, item := range s.resourceByID {
		if item.Active == active {
			items = append(items, item)
		}
	}
	sortByCreatedAt(items)
	return items, nil
}

func (s *Store) Create(ctx context.Context, resource ports.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.idByCode[resource.Code]; exists {
		return domainerrors.ErrCodeConflict
	}
	if _, exists := s.resourceByID[resource.ID]; exists {
		return domainerrors.ErrCodeConflict
	}

	s.resourceByID[resource.ID] = resource
	s.idByCode[resource.Code] = resource.ID
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.resourceByID[strings.TrimSpace(id)]
	if !ok {
		return domainerrors.ErrResourceNotFound
	}
	delete(s.resourceByID, item.ID)
	delete(s.idByCode, item.Code)
	return nil
}

func sortByCreatedAt(items []ports.Resource) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
