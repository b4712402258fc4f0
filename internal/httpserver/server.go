package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/health-coach/internal/config"
	"github.com/fdg312/health-coach/internal/nutrition"
	"github.com/fdg312/health-coach/internal/plans"
	"github.com/fdg312/health-coach/internal/ratelimit"
)

const shutdownTimeout = 15 * time.Second

// Deps are the collaborators the routes need. Limiter may be nil.
type Deps struct {
	Plans    *plans.Service
	Analyzer *nutrition.Analyzer
	Limiter  ratelimit.Store
}

// Server is the HTTP API.
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	limiter ratelimit.Store
}

// New creates the server and registers every route.
func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	if cfg.RateLimitPerMinute > 0 {
		s.limiter = deps.Limiter
	}

	s.routes(deps)
	return s
}

func (s *Server) routes(deps Deps) {
	plansHandler := plans.NewHandler(deps.Plans)
	nutritionHandler := nutrition.NewHandler(deps.Analyzer)

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /healthz", s.handleRoot)

	s.mux.Handle("POST /meal-plan", s.limited("/meal-plan", plansHandler.HandleMealPlan))
	s.mux.Handle("POST /workout-plan", s.limited("/workout-plan", plansHandler.HandleWorkoutPlan))
	s.mux.Handle("POST /nutrition-goals", s.limited("/nutrition-goals", nutritionHandler.HandleGoals))
	s.mux.Handle("POST /analyze-meal", s.limited("/analyze-meal", nutritionHandler.HandleAnalyzeMeal))
}

func (s *Server) limited(route string, h http.HandlerFunc) http.Handler {
	return RateLimitMiddleware(s.limiter, route, h)
}

// Handler returns the full middleware chain (outermost first): CORS, request
// log, router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = LoggingMiddleware(handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "Health & Nutrition Coach API is running",
	})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// generation calls may take up to the AI timeout
		WriteTimeout: time.Duration(s.config.AITimeoutSeconds)*time.Second + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO http: listening on http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("INFO http: shutting down (timeout=%s)", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the rate limiter store.
func (s *Server) Close() error {
	if s.limiter != nil {
		return s.limiter.Close()
	}
	return nil
}
