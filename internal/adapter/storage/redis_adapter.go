package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	requestKeyPrefix = "purchase:req:"
	requestKeyTTL    = 24 * time.Hour
)

// RedisAdapter tracks purchase request ids for duplicate suppression.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) ClaimRequest(ctx context.Context, requestID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, requestKeyPrefix+requestID, 1, requestKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *RedisAdapter) ReleaseRequest(ctx context.Context, requestID string) error {
	return r.client.Del(ctx, requestKeyPrefix+requestID).Err()
}
