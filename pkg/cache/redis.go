// pkg/cache/redis.go
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

const latestKey = "summary:latest"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// SetSummary caches a document summary and marks the document as the latest upload.
func (c *RedisCache) SetSummary(ctx context.Context, documentID, summary string) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, summaryKey(documentID), summary, c.ttl)
	pipe.Set(ctx, latestKey, documentID, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) GetSummary(ctx context.Context, documentID string) (string, error) {
	summary, err := c.client.Get(ctx, summaryKey(documentID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return summary, err
}

func (c *RedisCache) LatestDocumentID(ctx context.Context) (string, error) {
	id, err := c.client.Get(ctx, latestKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return id, err
}

func summaryKey(documentID string) string {
	return "summary:" + documentID
}
