package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/fdg312/health-coach/internal/foodfacts"
	"github.com/fdg312/health-coach/internal/profiles"
)

const maxAnalyzeItems = 50

// FoodLookup resolves a free-text food name to per-100g nutrients.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (foodfacts.Product, error)
}

// Analyzer sums nutrients for a list of free-text meal items.
type Analyzer struct {
	lookup FoodLookup
}

func NewAnalyzer(lookup FoodLookup) *Analyzer {
	return &Analyzer{lookup: lookup}
}

// Validate checks the analyze request shape.
func (r AnalyzeMealRequest) Validate() error {
	if len(r.Items) == 0 {
		return &profiles.ValidationError{Field: "items", Message: "must contain at least one item"}
	}
	if len(r.Items) > maxAnalyzeItems {
		return &profiles.ValidationError{Field: "items", Message: fmt.Sprintf("cannot exceed %d entries", maxAnalyzeItems)}
	}
	for i, item := range r.Items {
		if strings.TrimSpace(item) == "" {
			return &profiles.ValidationError{Field: fmt.Sprintf("items[%d]", i), Message: "must not be empty"}
		}
	}
	return nil
}

// Analyze looks up every item in order. A failed lookup marks the item as
// unmatched and never fails the whole analysis.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeMealRequest) (MealAnalysis, error) {
	if err := req.Validate(); err != nil {
		return MealAnalysis{}, err
	}

	result := MealAnalysis{
		Items:     make([]ItemAnalysis, 0, len(req.Items)),
		Unmatched: []string{},
		Basis:     "per_100g",
	}

	for _, raw := range req.Items {
		name := strings.TrimSpace(raw)
		product, err := a.lookup.Lookup(ctx, name)
		if err != nil {
			if !errors.Is(err, foodfacts.ErrNotFound) {
				log.Printf("WARN nutrition.analyze: lookup item=%q err=%v", name, err)
			}
			result.Items = append(result.Items, ItemAnalysis{Name: name})
			result.Unmatched = append(result.Unmatched, name)
			continue
		}

		n := product.Nutrients
		result.Items = append(result.Items, ItemAnalysis{
			Name:      name,
			Found:     true,
			Product:   product.Name,
			Nutrients: &n,
		})
		result.Totals.Calories += n.Calories
		result.Totals.Protein += n.Protein
		result.Totals.Carbs += n.Carbs
		result.Totals.Fat += n.Fat
		result.Totals.Fiber += n.Fiber
	}

	result.Totals = foodfacts.Nutrients{
		Calories: round1(result.Totals.Calories),
		Protein:  round1(result.Totals.Protein),
		Carbs:    round1(result.Totals.Carbs),
		Fat:      round1(result.Totals.Fat),
		Fiber:    round1(result.Totals.Fiber),
	}
	return result, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
