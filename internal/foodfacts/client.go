package foodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotFound is wrapped by LookupError when the database has no match.
var ErrNotFound = errors.New("no matching product")

// Nutrients holds macro values per 100 g of product.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Product is the best match for a free-text query.
type Product struct {
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	Nutrients Nutrients `json:"nutrients"`
}

// LookupError is returned for every failed lookup. Callers treat it as a miss.
type LookupError struct {
	Query string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("food lookup %q: %v", e.Query, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Client queries the OpenFoodFacts search API. Outgoing searches share one
// token bucket so a long item list cannot exceed the public API quota.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient builds a client. perMinute <= 0 disables outbound throttling.
func NewClient(baseURL, userAgent string, timeout time.Duration, perMinute int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		timeout:   timeout,
		limiter:   limiter,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup returns the first product matching name. The timeout covers both
// waiting for a throttle token and the request itself.
func (c *Client) Lookup(ctx context.Context, name string) (Product, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return Product{}, &LookupError{Query: name, Err: errors.New("empty query")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return Product{}, &LookupError{Query: query, Err: fmt.Errorf("throttled: %w", err)}
	}

	reqURL, err := url.Parse(c.baseURL + "/cgi/search.pl")
	if err != nil {
		return Product{}, &LookupError{Query: query, Err: fmt.Errorf("parse base url: %w", err)}
	}
	params := reqURL.Query()
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", "1")
	params.Set("fields", "code,product_name,nutriments")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Product{}, &LookupError{Query: query, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Product{}, &LookupError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Product{}, &LookupError{Query: query, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return Product{}, &LookupError{Query: query, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, &LookupError{Query: query, Err: fmt.Errorf("decode body: %w", err)}
	}
	if len(parsed.Products) == 0 {
		return Product{}, &LookupError{Query: query, Err: ErrNotFound}
	}

	p := parsed.Products[0]
	name = strings.TrimSpace(p.ProductName)
	if name == "" {
		name = query
	}
	return Product{
		Code: p.Code,
		Name: name,
		Nutrients: Nutrients{
			Calories: number(p.Nutriments["energy-kcal_100g"]),
			Protein:  number(p.Nutriments["proteins_100g"]),
			Carbs:    number(p.Nutriments["carbohydrates_100g"]),
			Fat:      number(p.Nutriments["fat_100g"]),
			Fiber:    number(p.Nutriments["fiber_100g"]),
		},
	}, nil
}

type searchResponse struct {
	Count    int `json:"count"`
	Products []struct {
		Code        string         `json:"code"`
		ProductName string         `json:"product_name"`
		Nutriments  map[string]any `json:"nutriments"`
	} `json:"products"`
}

// number reads a nutriment value; the API mixes numbers and numeric strings.
// number reads a nutriment value. Non-numeric and non-finite values are 0.
func number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
