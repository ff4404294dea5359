package user

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luu-sac/ceramics-api/internal/redisx"
)

// RedisTokenStore implements TokenStore on Redis with per-key TTLs.
type RedisTokenStore struct{ rdb *redis.Client }

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	key := fmt.Sprintf(redisx.KeyResetToken, token)
	return s.rdb.Set(ctx, key, userID, ttl).Err()
}

// ConsumeResetToken deletes the token so it is single use.
func (s *RedisTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf(redisx.KeyResetToken, token)
	userID, err := s.rdb.GetDel(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return userID, nil
}
