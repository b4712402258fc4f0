package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/health-coach/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/nutrition-goals", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_EleventhRequestReturns429(t *testing.T) {
	store := ratelimit.NewMemoryStore(10, time.Minute)
	handler := RateLimitMiddleware(store, "/nutrition-goals", okHandler())

	for i := 0; i < 10; i++ {
		if rr := doRequest(handler, "1.2.3.4:12345"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	rr := doRequest(handler, "1.2.3.4:12345")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request: expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("expected X-RateLimit-Remaining=0, got %q", got)
	}

	var body map[string]map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body["error"]["code"] != "rate_limited" {
		t.Errorf("expected code=rate_limited, got %q", body["error"]["code"])
	}
}

func TestRateLimit_DifferentIPsIndependent(t *testing.T) {
	store := ratelimit.NewMemoryStore(1, time.Minute)
	handler := RateLimitMiddleware(store, "/nutrition-goals", okHandler())

	if rr := doRequest(handler, "1.1.1.1:1000"); rr.Code != http.StatusOK {
		t.Fatalf("IP1: expected 200, got %d", rr.Code)
	}
	if rr := doRequest(handler, "2.2.2.2:2000"); rr.Code != http.StatusOK {
		t.Fatalf("IP2: expected 200, got %d", rr.Code)
	}
	if rr := doRequest(handler, "1.1.1.1:1000"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("IP1 again: expected 429, got %d", rr.Code)
	}
}

func TestRateLimit_RoutesIndependent(t *testing.T) {
	store := ratelimit.NewMemoryStore(1, time.Minute)
	goals := RateLimitMiddleware(store, "/nutrition-goals", okHandler())
	meals := RateLimitMiddleware(store, "/meal-plan", okHandler())

	if rr := doRequest(goals, "1.1.1.1:1000"); rr.Code != http.StatusOK {
		t.Fatalf("goals: expected 200, got %d", rr.Code)
	}
	if rr := doRequest(meals, "1.1.1.1:1000"); rr.Code != http.StatusOK {
		t.Fatalf("meal-plan: expected 200, got %d", rr.Code)
	}
}

type failingStore struct{}

func (failingStore) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("store unavailable")
}

func (failingStore) Close() error { return nil }

func TestRateLimit_StoreErrorFailsOpen(t *testing.T) {
	handler := RateLimitMiddleware(failingStore{}, "/nutrition-goals", okHandler())

	for i := 0; i < 20; i++ {
		if rr := doRequest(handler, "1.2.3.4:12345"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
}

func TestRateLimit_NilStoreDisabled(t *testing.T) {
	handler := RateLimitMiddleware(nil, "/nutrition-goals", okHandler())

	for i := 0; i < 20; i++ {
		if rr := doRequest(handler, "1.2.3.4:12345"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "first forwarded hop", xff: "203.0.113.9, 10.0.0.2", remoteAddr: "10.0.0.1:5555", want: "203.0.113.9"},
		{name: "single forwarded", xff: "203.0.113.9", remoteAddr: "10.0.0.1:5555", want: "203.0.113.9"},
		{name: "blank forwarded", xff: " ", remoteAddr: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "no port", remoteAddr: "10.0.0.1", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := extractIP(req); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
