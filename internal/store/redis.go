package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/types"
)

const (
	keyPrefix = "career:set:"
	indexKey  = "career:sets"
)

// RedisConfig holds connection settings for RedisStore
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisStore keeps sets in Redis with an expiry, for short-lived sharing links
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// ConnectRedis creates a client and verifies the connection
func ConnectRedis(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, &StorageError{Op: "connect", Message: "failed to connect to Redis", Cause: err}
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return NewRedisStore(client, cfg.TTL, logger), nil
}

// NewRedisStore wraps an existing client. A non-positive ttl stores sets without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// SetKey returns the Redis key holding one set
func SetKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Save writes the set and records it in the recency index
func (s *RedisStore) Save(ctx context.Context, saved *types.SavedSet) error {
	if saved == nil {
		return &StorageError{Op: "save", Message: "nil set"}
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to marshal set: %w", err)
	}

	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, SetKey(saved.ID), data, ttl)
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(saved.CreatedAt.UnixNano()), Member: saved.ID.String()})
		return nil
	})
	if err != nil {
		s.logger.Error("Redis save failed", zap.String("key", SetKey(saved.ID)), zap.Error(err))
		return &StorageError{Op: "save", Message: fmt.Sprintf("failed to save set %s", saved.ID), Cause: err}
	}
	return nil
}

// Get reads a set; expired sets are reported as not found
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*types.SavedSet, error) {
	value, err := s.client.Get(ctx, SetKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Message: fmt.Sprintf("failed to get set %s", id), Cause: err}
	}

	var saved types.SavedSet
	if err := json.Unmarshal([]byte(value), &saved); err != nil {
		return nil, &StorageError{Op: "get", Message: "failed to unmarshal set", Cause: err}
	}
	return &saved, nil
}

// List returns the newest live sets and prunes index entries whose set expired
func (s *RedisStore) List(ctx context.Context, limit int) ([]types.SavedSet, error) {
	limit = normalizeLimit(limit)

	ids, err := s.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, &StorageError{Op: "list", Message: "failed to read index", Cause: err}
	}
	if len(ids) == 0 {
		return []types.SavedSet{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, &StorageError{Op: "list", Message: "failed to read sets", Cause: err}
	}

	sets := make([]types.SavedSet, 0, len(values))
	var expired []any
	for i, value := range values {
		str, ok := value.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var saved types.SavedSet
		if err := json.Unmarshal([]byte(str), &saved); err != nil {
			s.logger.Warn("skipping unreadable set", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		sets = append(sets, saved)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, indexKey, expired...).Err(); err != nil {
			s.logger.Warn("failed to prune expired sets", zap.Error(err))
		}
	}
	return sets, nil
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
