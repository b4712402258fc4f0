package ratelimit

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertCounterSQL = `
INSERT INTO rate_limit_counters (key, window_start, count)
VALUES ($1, $2, 1)
ON CONFLICT (key, window_start)
DO UPDATE SET count = rate_limit_counters.count + 1
RETURNING count`

const pruneCountersSQL = `DELETE FROM rate_limit_counters WHERE window_start < $1`

// PostgresStore keeps window counters in the rate_limit_counters table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	limit  int
	window time.Duration
	calls  atomic.Int64
	now    func() time.Time
}

func NewPostgresStore(ctx context.Context, dbURL string, limit int, window time.Duration) (*PostgresStore, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &PostgresStore{pool: pool, limit: limit, window: window, now: time.Now}, nil
}

func (s *PostgresStore) Allow(ctx context.Context, key string) (Decision, error) {
	now := s.now().UTC()
	start := now.Truncate(s.window)

	var count int64
	if err := s.pool.QueryRow(ctx, upsertCounterSQL, key, start).Scan(&count); err != nil {
		return Decision{}, fmt.Errorf("increment counter: %w", err)
	}

	// Simple cleanup: every 1000 requests, drop counters from past windows.
	if s.calls.Add(1)%1000 == 0 {
		if _, err := s.pool.Exec(ctx, pruneCountersSQL, start); err != nil {
			log.Printf("WARN ratelimit.postgres: prune err=%v", err)
		}
	}

	return decide(count, s.limit, start, s.window, now), nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
