package order

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/luu-sac/ceramics-api/internal/redisx"
)

// RedisStatusCache caches order status with a short TTL. All errors are
// swallowed; a cold or broken cache only costs a database read.
type RedisStatusCache struct{ rdb *redis.Client }

func NewRedisStatusCache(rdb *redis.Client) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb}
}

func (c *RedisStatusCache) SetStatus(ctx context.Context, orderID string, status Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = c.rdb.Set(ctx, key, string(status), redisx.TTLStatusCache).Err()
}

func (c *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (Status, bool) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	s, err := c.rdb.Get(ctx, key).Result()
	if err != nil || s == "" {
		return "", false
	}
	return Status(s), true
}
