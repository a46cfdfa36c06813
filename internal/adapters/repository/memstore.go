package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/pkg/metrics"
)

// MemStore implements Store with an in-memory slice plus an id index.
// Insertion order is preserved so snapshots enumerate deterministically.
type MemStore struct {
	mu    sync.RWMutex
	items []model.Item
	index map[string]int // id -> position in items
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the backing storage.
func WithInitialCapacity(capacity int) Option {
	return func(s *MemStore) {
		if capacity > 0 {
			s.items = make([]model.Item, 0, capacity)
		}
	}
}

// NewMemStore creates an empty in-memory wardrobe store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		index: make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ Store = (*MemStore)(nil)

// Add registers a classified item.
func (s *MemStore) Add(ctx context.Context, item model.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[item.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
	}

	// Store a deep copy; callers must not be able to mutate stored items.
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item.Clone())

	metrics.RecordItemRegistered()
	metrics.UpdateWardrobeSize(len(s.items))
	return nil
}

// Get returns the item with the given id.
func (s *MemStore) Get(ctx context.Context, id string) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[pos].Clone(), nil
}

// Snapshot returns an immutable copy of the wardrobe in insertion order.
func (s *MemStore) Snapshot(ctx context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return nil, ErrEmptyWardrobe
	}

	out := make([]model.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out, nil
}

// Clear removes every item from the wardrobe.
func (s *MemStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[string]int)

	metrics.RecordWardrobeClear()
	metrics.UpdateWardrobeSize(0)
}

// Count returns the number of items currently registered.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
