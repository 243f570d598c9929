package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appresolution "github.com/skubridge/backend/internal/application/resolution"
	"github.com/skubridge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultReferenceKey = "resolution:reference:v1"

// RedisReferenceSource caches reference data in Redis in front of a
// slower source, usually the repository-backed one. Cache failures are
// logged and treated as misses so resolution keeps working when Redis
// is down.
type RedisReferenceSource struct {
	client *redis.Client
	inner  appresolution.ReferenceSource
	logger *zap.Logger
	key    string
	ttl    time.Duration
}

// RedisReferenceSourceOption configures a RedisReferenceSource
type RedisReferenceSourceOption func(*RedisReferenceSource)

// WithReferenceKey overrides the Redis key used for the cache entry
func WithReferenceKey(key string) RedisReferenceSourceOption {
	return func(s *RedisReferenceSource) {
		s.key = key
	}
}

// WithLogger sets the logger for cache diagnostics
func WithLogger(logger *zap.Logger) RedisReferenceSourceOption {
	return func(s *RedisReferenceSource) {
		s.logger = logger
	}
}

// NewRedisReferenceSource creates a caching source around inner with the given TTL
func NewRedisReferenceSource(client *redis.Client, inner appresolution.ReferenceSource, ttl time.Duration, opts ...RedisReferenceSourceOption) *RedisReferenceSource {
	s := &RedisReferenceSource{
		client: client,
		inner:  inner,
		logger: zap.NewNop(),
		key:    defaultReferenceKey,
		ttl:    ttl,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewRedisClient creates a Redis client from configuration and verifies the connection
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Load returns cached reference data when present, otherwise loads from
// the inner source and stores the result.
func (s *RedisReferenceSource) Load(ctx context.Context) (*appresolution.ReferenceData, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	switch {
	case err == nil:
		var data appresolution.ReferenceData
		if unmarshalErr := json.Unmarshal(payload, &data); unmarshalErr == nil {
			return &data, nil
		}
		// Corrupt entry, drop it and reload
		s.logger.Warn("Discarding corrupt reference cache entry", zap.String("key", s.key))
		if delErr := s.client.Del(ctx, s.key).Err(); delErr != nil {
			s.logger.Warn("Failed to delete corrupt cache entry", zap.Error(delErr))
		}
	case errors.Is(err, redis.Nil):
		// Cache miss
	default:
		s.logger.Warn("Reference cache read failed, falling through", zap.Error(err))
	}

	data, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(data); marshalErr == nil {
		if setErr := s.client.Set(ctx, s.key, payload, s.ttl).Err(); setErr != nil {
			s.logger.Warn("Reference cache write failed", zap.Error(setErr))
		}
	}

	return data, nil
}

// Invalidate drops the cached entry and invalidates the inner source
func (s *RedisReferenceSource) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate reference cache: %w", err)
	}
	return s.inner.Invalidate(ctx)
}

// Ensure RedisReferenceSource implements ReferenceSource
var _ appresolution.ReferenceSource = (*RedisReferenceSource)(nil)
