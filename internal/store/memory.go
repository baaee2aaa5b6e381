package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/career-recommender/internal/types"
)

// MemoryStore keeps sets in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[uuid.UUID]types.SavedSet
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[uuid.UUID]types.SavedSet)}
}

// Save stores a copy of the set, replacing any set with the same id
func (s *MemoryStore) Save(_ context.Context, saved *types.SavedSet) error {
	if saved == nil {
		return &StorageError{Op: "save", Message: "nil set"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[saved.ID] = *saved
	return nil
}

// Get returns the set with the given id
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*types.SavedSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	saved, ok := s.sets[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &saved, nil
}

// List returns up to limit sets, newest first
func (s *MemoryStore) List(_ context.Context, limit int) ([]types.SavedSet, error) {
	s.mu.RLock()
	all := make([]types.SavedSet, 0, len(s.sets))
	for _, saved := range s.sets {
		all = append(all, saved)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit = normalizeLimit(limit); len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
