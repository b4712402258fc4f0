package plans

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/fdg312/health-coach/internal/foodfacts"
	"github.com/fdg312/health-coach/internal/planschema"
)

// enrichMealPlan attaches database nutrients to every meal item. Lookups run
// in day order and repeated item names are looked up once. A failed lookup
// leaves an empty object on that item only.
func (s *Service) enrichMealPlan(ctx context.Context, plan *MealPlan) {
	seen := make(map[string]map[string]float64)
	var matched, failed int

	for _, day := range planschema.Weekdays {
		items := plan.Meals[day]
		for i := range items {
			key := strings.ToLower(strings.TrimSpace(items[i].Item))
			values, ok := seen[key]
			if !ok {
				values = s.lookupNutrients(ctx, items[i].Item)
				seen[key] = values
				if len(values) == 0 {
					failed++
				} else {
					matched++
				}
			}
			items[i].DatabaseNutrients = copyValues(values)
		}
	}

	log.Printf("INFO plans.enrich: lookups=%d matched=%d failed=%d", matched+failed, matched, failed)
}

func (s *Service) lookupNutrients(ctx context.Context, name string) map[string]float64 {
	product, err := s.lookup.Lookup(ctx, name)
	if err != nil {
		if !errors.Is(err, foodfacts.ErrNotFound) {
			log.Printf("WARN plans.enrich: item=%q err=%v", name, err)
		}
		return map[string]float64{}
	}

	n := product.Nutrients
	return map[string]float64{
		"calories": n.Calories,
		"protein":  n.Protein,
		"carbs":    n.Carbs,
		"fat":      n.Fat,
		"fiber":    n.Fiber,
	}
}

func copyValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
