package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/health-coach/internal/config"
)

// DefaultWindow is the counting window for per-minute limits.
const DefaultWindow = time.Minute

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Store counts requests per key in fixed windows. The N+1th request inside
// a window is rejected until the window ends.
type Store interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}

// decide turns the post-increment count for a window into a Decision.
func decide(count int64, limit int, windowStart time.Time, window time.Duration, now time.Time) Decision {
	d := Decision{Limit: limit}
	if count <= int64(limit) {
		d.Allowed = true
		d.Remaining = limit - int(count)
		return d
	}
	d.RetryAfter = windowStart.Add(window).Sub(now)
	if d.RetryAfter < time.Second {
		d.RetryAfter = time.Second
	}
	return d
}

type Logger interface {
	Printf(format string, v ...any)
}

// NewStore builds the store selected by cfg.RateLimitStore.
func NewStore(ctx context.Context, cfg *config.Config, logger Logger) (Store, error) {
	limit := cfg.RateLimitPerMinute
	switch cfg.RateLimitStore {
	case config.RateLimitStoreRedis:
		store, err := NewRedisStore(ctx, cfg.Redis, limit, DefaultWindow)
		if err != nil {
			return nil, fmt.Errorf("redis rate limit store: %w", err)
		}
		logf(logger, "INFO ratelimit: store=redis limit=%d/min", limit)
		return store, nil

	case config.RateLimitStorePostgres:
		store, err := NewPostgresStore(ctx, cfg.DatabaseURL, limit, DefaultWindow)
		if err != nil {
			return nil, fmt.Errorf("postgres rate limit store: %w", err)
		}
		logf(logger, "INFO ratelimit: store=postgres limit=%d/min", limit)
		return store, nil

	default:
		logf(logger, "INFO ratelimit: store=memory limit=%d/min", limit)
		return NewMemoryStore(limit, DefaultWindow), nil
	}
}

func logf(logger Logger, format string, v ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}
