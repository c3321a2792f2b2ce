package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

const DefaultRedisAddress = "localhost:6379"

type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore connects to a Redis server. The connection is established lazily by the client,
// so this does not fail if the server is down; the first operation will.
func NewRedisStore(address string) *RedisStore {
	if address == "" {
		address = DefaultRedisAddress
	}
	return &RedisStore{
		redis: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: "",
			DB:       0,
		}),
	}
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) DSN() string {
	return fmt.Sprintf("redis://%s", r.redis.Options().Addr)
}

func (r *RedisStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	value, err := r.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return o.None[string](), nil
	}
	if err != nil {
		return o.None[string](), opError(r, "get", key, err)
	}
	return o.Some(value), nil
}

func (r *RedisStore) Put(ctx context.Context, key, value string) error {
	return opError(r, "put", key, r.redis.Set(ctx, key, value, 0).Err())
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return opError(r, "delete", key, r.redis.Del(ctx, key).Err())
}

// Ping checks that the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return opError(r, "ping", "", r.redis.Ping(ctx).Err())
}

func (r *RedisStore) Close() error { return r.redis.Close() }
