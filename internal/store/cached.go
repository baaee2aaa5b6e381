package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/types"
)

// CachedStore writes through to a primary store and a cache, and serves
// reads from the cache when it has the set.
type CachedStore struct {
	primary Store
	cache   Store
	logger  *zap.Logger
}

// NewCachedStore layers cache in front of primary
func NewCachedStore(primary, cache Store, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{primary: primary, cache: cache, logger: logger}
}

// Save persists to the primary store; cache failures are logged only
func (s *CachedStore) Save(ctx context.Context, saved *types.SavedSet) error {
	if err := s.primary.Save(ctx, saved); err != nil {
		return err
	}
	if err := s.cache.Save(ctx, saved); err != nil {
		s.logger.Warn("cache save failed", zap.String("id", saved.ID.String()), zap.Error(err))
	}
	return nil
}

// Get tries the cache, then the primary store, refilling the cache on a miss
func (s *CachedStore) Get(ctx context.Context, id uuid.UUID) (*types.SavedSet, error) {
	saved, err := s.cache.Get(ctx, id)
	if err == nil {
		return saved, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		s.logger.Warn("cache get failed", zap.String("id", id.String()), zap.Error(err))
	}

	saved, err = s.primary.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Save(ctx, saved); err != nil {
		s.logger.Warn("cache refill failed", zap.String("id", id.String()), zap.Error(err))
	}
	return saved, nil
}

// List always reads the primary store
func (s *CachedStore) List(ctx context.Context, limit int) ([]types.SavedSet, error) {
	return s.primary.List(ctx, limit)
}

// Close closes both stores
func (s *CachedStore) Close() error {
	return errors.Join(s.cache.Close(), s.primary.Close())
}
