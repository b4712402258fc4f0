package foodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupReturnsFirstProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "oatmeal", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "coach-test/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2,"products":[{"code":"123","product_name":"Rolled Oats","nutriments":{"energy-kcal_100g":379,"proteins_100g":"13.2","carbohydrates_100g":67.7,"fat_100g":6.5,"fiber_100g":10.1}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "coach-test/1.0", time.Second, 0)
	p, err := c.Lookup(context.Background(), " oatmeal ")
	require.NoError(t, err)

	assert.Equal(t, "Rolled Oats", p.Name)
	assert.Equal(t, "123", p.Code)
	assert.Equal(t, 379.0, p.Nutrients.Calories)
	assert.Equal(t, 13.2, p.Nutrients.Protein)
	assert.Equal(t, 10.1, p.Nutrients.Fiber)
}

func TestLookupNoProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"products":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "ua", time.Second, 0).Lookup(context.Background(), "unobtainium")

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "unobtainium", lerr.Query)
}

func TestLookupUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "ua", time.Second, 0).Lookup(context.Background(), "rice")

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "status 503")
}

func TestLookupEmptyQuery(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", "ua", time.Second, 0).Lookup(context.Background(), "  ")

	var lerr *LookupError
	assert.ErrorAs(t, err, &lerr)
}

func TestLookupThrottledBeyondBudget(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"count":1,"products":[{"product_name":"Rice","nutriments":{"energy-kcal_100g":130}}]}`))
	}))
	defer srv.Close()

	// one token per minute: the second lookup cannot get a token before the timeout
	c := NewClient(srv.URL, "ua", 50*time.Millisecond, 1)

	_, err := c.Lookup(context.Background(), "rice")
	require.NoError(t, err)

	_, err = c.Lookup(context.Background(), "rice")
	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "throttled")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, hits)
}

func TestLookupIgnoresNonFiniteNutriments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"products":[{"product_name":"Mystery bar","nutriments":{"energy-kcal_100g":"NaN","proteins_100g":"Inf","fat_100g":"-infinity","carbohydrates_100g":"42.5","fiber_100g":"n/a"}}]}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, "ua", time.Second, 0).Lookup(context.Background(), "mystery bar")
	require.NoError(t, err)

	assert.Equal(t, Nutrients{Carbs: 42.5}, p.Nutrients)

	_, err = json.Marshal(p)
	assert.NoError(t, err)
}
