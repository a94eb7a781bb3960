package session

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

// RedisRegistry keeps one key per live session, expiring with the session.
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

func NewRedisRegistry(client *redis.Client, prefix string) *RedisRegistry {
	return &RedisRegistry{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRegistry) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *RedisRegistry) Add(ctx context.Context, id, email string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	return r.client.Set(ctx, r.key(id), email, ttl).Err()
}

func (r *RedisRegistry) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *RedisRegistry) Remove(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
