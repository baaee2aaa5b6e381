// Package store persists recommendation sets so they can be fetched and shared later.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-recommender/internal/types"
)

// DefaultListLimit caps List when the caller passes a non-positive limit
const DefaultListLimit = 20

// Store saves and retrieves recommendation sets
type Store interface {
	Save(ctx context.Context, saved *types.SavedSet) error
	// Get returns *NotFoundError when no set has the id
	Get(ctx context.Context, id uuid.UUID) (*types.SavedSet, error)
	// List returns the most recent sets, newest first
	List(ctx context.Context, limit int) ([]types.SavedSet, error)
	Close() error
}

// NewSavedSet wraps a set with a fresh id and creation time
func NewSavedSet(profile types.UserProfile, set types.RecommendationSet) *types.SavedSet {
	return &types.SavedSet{
		ID:        uuid.New(),
		Profile:   profile,
		Set:       set,
		CreatedAt: time.Now().UTC(),
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
