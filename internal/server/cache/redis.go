package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sireesha-siri/geotag-plants/internal/logging"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

// RedisCache stores each user's collection as a single JSON value under
// plants:<userID>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logging.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log logging.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func key(userID string) string {
	return fmt.Sprintf("plants:%s", userID)
}

func (c *RedisCache) Get(ctx context.Context, userID string) ([]*models.Plant, bool) {
	b, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn(ctx, "cache get failed", "user_id", userID, "error", err)
		}
		return nil, false
	}

	var plants []*models.Plant
	if err := json.Unmarshal(b, &plants); err != nil {
		c.log.Warn(ctx, "cache entry malformed, dropping", "user_id", userID, "error", err)
		_ = c.client.Del(ctx, key(userID)).Err()
		return nil, false
	}

	return plants, true
}

func (c *RedisCache) Set(ctx context.Context, userID string, plants []*models.Plant) {
	b, err := json.Marshal(plants)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(userID), b, c.ttl).Err(); err != nil {
		c.log.Warn(ctx, "cache set failed", "user_id", userID, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
