package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"recipeapp.com/internal/constants"
	"recipeapp.com/internal/domain"
)

// RedisTokenBlocklist stores revoked token ids as expiring keys, so the set
// never outgrows the tokens that could still be presented.
type RedisTokenBlocklist struct {
	rdb *redis.Client
}

func NewRedisTokenBlocklist(rdb *redis.Client) *RedisTokenBlocklist {
	return &RedisTokenBlocklist{rdb: rdb}
}

func (b *RedisTokenBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	if err := b.rdb.Set(ctx, constants.RedisKeyRevokedTokenPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.rdb.Exists(ctx, constants.RedisKeyRevokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}

var _ domain.TokenBlocklist = (*RedisTokenBlocklist)(nil)
