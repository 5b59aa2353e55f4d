package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/orbit/pkg/graph"
)

// MemoryStore keeps layouts in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]graph.Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]graph.Layout)}
}

func (s *MemoryStore) Save(ctx context.Context, l graph.Layout) (string, error) {
	l = clone(l)
	l.ID = NewID()

	s.mu.Lock()
	s.layouts[l.ID] = l
	s.mu.Unlock()
	return l.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (graph.Layout, error) {
	s.mu.RLock()
	l, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return graph.Layout{}, notFound(id)
	}
	return clone(l), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.layouts, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Len returns the number of stored layouts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layouts)
}

// clone copies the node and edge slices so callers cannot mutate stored
// layouts. Node values and control points are shared; both are replaced
// rather than mutated throughout the module.
func clone(l graph.Layout) graph.Layout {
	l.Nodes = slices.Clone(l.Nodes)
	l.Edges = slices.Clone(l.Edges)
	return l
}

var _ Store = (*MemoryStore)(nil)
