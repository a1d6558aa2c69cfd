package cache

import (
	"context"
	"errors"
	"time"

	redisv8 "github.com/go-redis/redis/v8"
)

// RedisService implements CacheService on the shared redis client.
type RedisService struct {
	client *redisv8.Client
	prefix string
}

func NewRedisService(client *redisv8.Client) *RedisService {
	return &RedisService{client: client, prefix: "cache:"}
}

func (r *RedisService) Get(key string) ([]byte, error) {
	b, err := r.client.Get(context.Background(), r.prefix+key).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *RedisService) Set(key string, value []byte, expiration time.Duration) error {
	return r.client.Set(context.Background(), r.prefix+key, value, expiration).Err()
}

func (r *RedisService) Delete(key string) error {
	return r.client.Del(context.Background(), r.prefix+key).Err()
}
