package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Redis keys
	categoriesKey   = "trivia:categories"
	rateLimitPrefix = "trivia:ratelimit:"
)

// Store keeps short-lived data in Redis
type Store struct {
	redis *redis.Client
}

// NewStore creates a new Redis-backed store
func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// GetCategories retrieves the cached category mapping
func (s *Store) GetCategories(ctx context.Context) (domain.CategoryMap, error) {
	data, err := s.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var categories domain.CategoryMap
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

// SetCategories stores the category mapping for ttl
func (s *Store) SetCategories(ctx context.Context, categories domain.CategoryMap, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	return s.redis.Set(ctx, categoriesKey, data, ttl).Err()
}

// Allow counts a request from key in the current fixed window and reports
// whether it is within limit
func (s *Store) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := rateLimitPrefix + key
	count, err := s.redis.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := s.redis.Expire(ctx, k, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
