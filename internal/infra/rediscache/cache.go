// Package rediscache provides a Redis-backed cache for derived results.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
)

const bestResultTTL = 15 * time.Minute

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// New creates a cache client and verifies the connection.
func New(ctx context.Context, url string, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Cache{client: client, logger: logger}, nil
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.client.Close()
}

func bestResultKey(userID, certificationID string) string {
	return fmt.Sprintf("best_result:%s:%s", userID, certificationID)
}

// GetBest returns the cached best result. Any failure is a miss.
func (c *Cache) GetBest(ctx context.Context, userID, certificationID string) (*entities.TestResult, bool) {
	data, err := c.client.Get(ctx, bestResultKey(userID, certificationID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var result entities.TestResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("cache entry malformed", zap.Error(err))
		return nil, false
	}
	return &result, true
}

// SetBest caches a best result. Failures are logged and ignored.
func (c *Cache) SetBest(ctx context.Context, result *entities.TestResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.Error(err))
		return
	}

	key := bestResultKey(result.UserID, result.CertificationID)
	if err := c.client.Set(ctx, key, data, bestResultTTL).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached best result for a user and certification.
func (c *Cache) Invalidate(ctx context.Context, userID, certificationID string) {
	if err := c.client.Del(ctx, bestResultKey(userID, certificationID)).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.Error(err))
	}
}

// Noop is a cache that never hits, used when Redis is not configured.
type Noop struct{}

func (Noop) GetBest(context.Context, string, string) (*entities.TestResult, bool) { return nil, false }
func (Noop) SetBest(context.Context, *entities.TestResult)                        {}
func (Noop) Invalidate(context.Context, string, string)                           {}
