package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/paris-web-client/internal/session"
)

// KeyPrefix é o namespace das chaves do cliente no Redis
const KeyPrefix = "paris:storage:"

var _ session.TokenStore = (*RedisStore)(nil)

// RedisStore guarda o token no Redis, sem expiração (o backend decide a validade)
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) key() string { return KeyPrefix + session.StorageKey }

func (r *RedisStore) Load(ctx context.Context) (string, error) {
	v, err := r.rdb.Get(ctx, r.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (r *RedisStore) Save(ctx context.Context, token string) error {
	return r.rdb.Set(ctx, r.key(), token, 0).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key()).Err()
}
