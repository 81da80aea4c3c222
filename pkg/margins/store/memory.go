package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/komsit37/margins/pkg/margins/types"
)

// MemoryStore keeps analyses in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]types.MarginAnalysis
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]types.MarginAnalysis)}
}

func (s *MemoryStore) List(ctx context.Context) ([]types.MarginAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.MarginAnalysis, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, clone(a))
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.MarginAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	// copy so callers cannot mutate the stored snapshot
	c := clone(a)
	return &c, nil
}

func (s *MemoryStore) Create(ctx context.Context, a types.MarginAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[a.ID]; exists {
		return fmt.Errorf("%w: %s", ErrExists, a.ID)
	}
	s.items[a.ID] = clone(a)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.items[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	patch.apply(&a)
	s.items[id] = a
	return nil
}

func clone(a types.MarginAnalysis) types.MarginAnalysis {
	a.Products = append([]types.Product(nil), a.Products...)
	return a
}
