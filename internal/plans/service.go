package plans

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fdg312/health-coach/internal/ai"
	"github.com/fdg312/health-coach/internal/foodfacts"
	"github.com/fdg312/health-coach/internal/planschema"
	"github.com/fdg312/health-coach/internal/profiles"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultArchiveTimeout = 5 * time.Second
)

// FoodLookup resolves a meal item name to per-100g nutrients.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (foodfacts.Product, error)
}

// RejectArchive keeps rejected generation output for later inspection.
type RejectArchive interface {
	Archive(ctx context.Context, kind, raw string, cause error) (string, error)
}

type Options struct {
	// Timeout bounds the single generation call.
	Timeout time.Duration
	// Enrich looks up every meal item in the food database.
	Enrich bool
	// ArchiveTimeout bounds storing rejected output.
	ArchiveTimeout time.Duration
}

// Service turns profiles into meal and workout plans with one generation call
// per request.
type Service struct {
	provider ai.Provider
	lookup   FoodLookup
	archive  RejectArchive
	timeout  time.Duration
	enrich   bool

	archiveTimeout time.Duration
}

// NewService creates a plan service. lookup and archive may be nil.
func NewService(provider ai.Provider, lookup FoodLookup, archive RejectArchive, opts Options) *Service {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	archiveTimeout := opts.ArchiveTimeout
	if archiveTimeout <= 0 {
		archiveTimeout = defaultArchiveTimeout
	}
	return &Service{
		provider:       provider,
		lookup:         lookup,
		archive:        archive,
		timeout:        timeout,
		enrich:         opts.Enrich && lookup != nil,
		archiveTimeout: archiveTimeout,
	}
}

// GenerateMealPlan builds a 7-day meal plan for p.
func (s *Service) GenerateMealPlan(ctx context.Context, p profiles.Profile) (MealPlan, error) {
	raw, err := s.generate(ctx, ai.GenerateRequest{
		Kind:     ai.KindMealPlan,
		System:   mealPlanSystemPrompt,
		Prompt:   mealPlanPrompt(p),
		JSONMode: true,
	})
	if err != nil {
		return MealPlan{}, err
	}

	obj, err := planschema.ParseMealPlan(raw)
	if err != nil {
		return MealPlan{}, s.reject(ctx, ai.KindMealPlan, raw, err)
	}

	var plan MealPlan
	if err := decodeValidated(obj, &plan); err != nil {
		return MealPlan{}, s.reject(ctx, ai.KindMealPlan, raw, err)
	}

	if s.enrich {
		s.enrichMealPlan(ctx, &plan)
	}
	return plan, nil
}

// GenerateWorkoutPlan builds a 7-day workout plan for p.
func (s *Service) GenerateWorkoutPlan(ctx context.Context, p profiles.Profile) (WorkoutPlan, error) {
	raw, err := s.generate(ctx, ai.GenerateRequest{
		Kind:     ai.KindWorkoutPlan,
		System:   workoutPlanSystemPrompt,
		Prompt:   workoutPlanPrompt(p),
		JSONMode: true,
	})
	if err != nil {
		return WorkoutPlan{}, err
	}

	obj, err := planschema.ParseWorkoutPlan(raw)
	if err != nil {
		return WorkoutPlan{}, s.reject(ctx, ai.KindWorkoutPlan, raw, err)
	}

	var plan WorkoutPlan
	if err := decodeValidated(obj, &plan); err != nil {
		return WorkoutPlan{}, s.reject(ctx, ai.KindWorkoutPlan, raw, err)
	}
	return plan, nil
}

func (s *Service) generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.provider.Generate(callCtx, req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		genErr := &GenerationError{Kind: req.Kind, Message: "provider call failed", Err: err}
		if genErr.Timeout() {
			genErr.Message = fmt.Sprintf("provider call timed out after %s", s.timeout)
		}
		log.Printf("ERROR plans.generate: kind=%s duration=%s err=%v", req.Kind, time.Since(start).Round(time.Millisecond), err)
		return "", genErr
	}

	log.Printf("INFO plans.generate: kind=%s model=%s duration=%s chars=%d", req.Kind, resp.Model, time.Since(start).Round(time.Millisecond), len(resp.Text))
	return resp.Text, nil
}

// reject logs and archives rejected output and wraps cause for the caller.
func (s *Service) reject(ctx context.Context, kind, raw string, cause error) error {
	log.Printf("WARN plans.validate: kind=%s rejected err=%v raw=%q", kind, cause, raw)

	if s.archive != nil {
		s.archiveRejected(ctx, kind, raw, cause)
	}

	return &GenerationError{Kind: kind, Message: "output rejected", Raw: raw, Err: cause}
}

// archiveRejected stores raw with its own deadline. It waits for the store
// only while ctx is alive; a slow store keeps running in the background until
// archiveTimeout.
func (s *Service) archiveRejected(ctx context.Context, kind, raw string, cause error) {
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.archiveTimeout)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		key, err := s.archive.Archive(archiveCtx, kind, raw, cause)
		switch {
		case err != nil:
			log.Printf("WARN plans.archive: kind=%s err=%v", kind, err)
		case key != "":
			log.Printf("INFO plans.archive: kind=%s key=%s", kind, key)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("WARN plans.archive: kind=%s request ended before archive finished", kind)
	}
}
