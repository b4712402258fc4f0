package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/health-coach/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit"

// RedisStore shares window counters between API instances through Redis.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisStore connects using cfg.URL when set, otherwise Addr/Password/DB.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, limit int, window time.Duration) (*RedisStore, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return newRedisStore(client, limit, window), nil
}

func newRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisStore{client: client, limit: limit, window: window, now: time.Now}
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if url := strings.TrimSpace(cfg.URL); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return opts, nil
	}
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	return &redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

func (s *RedisStore) Allow(ctx context.Context, key string) (Decision, error) {
	now := s.now()
	start := now.Truncate(s.window)
	redisKey := fmt.Sprintf("%s:%s:%d", redisKeyPrefix, key, start.Unix())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("redis incr %s: %w", redisKey, err)
	}

	return decide(incr.Val(), s.limit, start, s.window, now), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
