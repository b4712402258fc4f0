package nutrition

import "github.com/fdg312/health-coach/internal/foodfacts"

// Goals are the daily targets derived from a profile.
type Goals struct {
	Calories               float64           `json:"calories"`
	Protein                float64           `json:"protein"`
	Carbs                  float64           `json:"carbs"`
	Fat                    float64           `json:"fat"`
	Fiber                  float64           `json:"fiber"`
	Hydration              float64           `json:"hydration"`
	MealTiming             map[string]string `json:"meal_timing"`
	MicronutrientFocus     []string          `json:"micronutrient_focus"`
	SupplementsRecommended []Supplement      `json:"supplements_recommended"`
}

type Supplement struct {
	Name    string `json:"name"`
	Dosage  string `json:"dosage"`
	Timing  string `json:"timing"`
	Purpose string `json:"purpose"`
}

// AnalyzeMealRequest is the body of POST /analyze-meal.
type AnalyzeMealRequest struct {
	Items []string `json:"items"`
}

// ItemAnalysis is the lookup outcome for one requested item.
type ItemAnalysis struct {
	Name      string               `json:"name"`
	Found     bool                 `json:"found"`
	Product   string               `json:"product,omitempty"`
	Nutrients *foodfacts.Nutrients `json:"nutrients,omitempty"`
}

// MealAnalysis aggregates per-100g nutrients over every matched item.
type MealAnalysis struct {
	Totals    foodfacts.Nutrients `json:"totals"`
	Items     []ItemAnalysis      `json:"items"`
	Unmatched []string            `json:"unmatched"`
	Basis     string              `json:"basis"`
}
