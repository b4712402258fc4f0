package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type counter struct {
	start time.Time
	count int64
}

// MemoryStore keeps per-key window counters in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	limit    int
	window   time.Duration
	calls    atomic.Int64
	now      func() time.Time
}

func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryStore{
		counters: make(map[string]*counter),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (s *MemoryStore) Allow(ctx context.Context, key string) (Decision, error) {
	now := s.now()
	start := now.Truncate(s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.counters[key]
	if !exists || !entry.start.Equal(start) {
		entry = &counter{start: start}
		s.counters[key] = entry
	}
	entry.count++

	// Simple cleanup: every 1000 requests, drop counters from past windows.
	if s.calls.Add(1)%1000 == 0 {
		s.cleanup(start)
	}

	return decide(entry.count, s.limit, start, s.window, now), nil
}

func (s *MemoryStore) cleanup(current time.Time) {
	for key, entry := range s.counters {
		if entry.start.Before(current) {
			delete(s.counters, key)
		}
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
