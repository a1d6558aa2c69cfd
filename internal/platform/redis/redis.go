package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"trendscraper/internal/logger"
)

// ErrNotFound is returned by CacheGet when the key does not exist.
var ErrNotFound = errors.New("key not found")

type Options struct {
	Addr     string
	Password string
}

type Service struct {
	client *redisv8.Client
	log    *logger.Logger
}

func New(opts Options) (*Service, error) {
	c := redisv8.NewClient(&redisv8.Options{Addr: opts.Addr, Password: opts.Password})
	if err := c.Ping(context.Background()).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &Service{client: c, log: logger.New("Redis")}, nil
}

func (s *Service) Close() error            { return s.client.Close() }
func (s *Service) Client() *redisv8.Client { return s.client }

// HealthCheck pings and round-trips a short-lived key.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.LogErrorf("redis health check failed: %v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	key := "health:test:" + time.Now().Format("20060102150405.000")
	if err := s.client.Set(ctx, key, "ok", 10*time.Second).Err(); err != nil {
		return fmt.Errorf("redis write test failed: %w", err)
	}
	defer s.client.Del(ctx, key)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis read test failed: %w", err)
	}
	if val != "ok" {
		return fmt.Errorf("redis value mismatch: got %s, want ok", val)
	}
	return nil
}

func (s *Service) AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: s.client.Options().Addr, Password: s.client.Options().Password}
}

// CacheGet decodes the JSON value stored at key into dest.
func (s *Service) CacheGet(ctx context.Context, key string, dest interface{}) error {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

func (s *Service) CacheSet(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}
