package httpserver

import (
	"net/http"

	"github.com/fdg312/health-coach/internal/config"
	"github.com/rs/cors"
)

// CORSMiddleware wraps next with the configured CORS policy. An empty origin
// list allows no cross-origin requests.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: cfg.CORSAllowCredentials,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		MaxAge:           600,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(opts).Handler(next)
}
