package ratelimit

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/fdg312/health-coach/internal/config"
)

func TestNewStoreDefaultsToMemory(t *testing.T) {
	var buf bytes.Buffer
	store, err := NewStore(context.Background(), &config.Config{RateLimitPerMinute: 10, RateLimitStore: config.RateLimitStoreMemory}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer store.Close()

	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", store)
	}
	if !strings.Contains(buf.String(), "store=memory limit=10/min") {
		t.Fatalf("expected store log line, got: %s", buf.String())
	}
}

func TestNewStorePostgresWithoutURLFails(t *testing.T) {
	_, err := NewStore(context.Background(), &config.Config{RateLimitPerMinute: 10, RateLimitStore: config.RateLimitStorePostgres}, nil)
	if err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}
