package ai

import "context"

// Generation kinds understood by providers.
const (
	KindMealPlan    = "meal_plan"
	KindWorkoutPlan = "workout_plan"
)

// Provider produces raw text for a single prompt. Implementations make one
// attempt and never retry.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

type GenerateRequest struct {
	Kind   string
	System string
	Prompt string
	// JSONMode asks the model for a bare JSON object when it supports it.
	JSONMode bool
}

type GenerateResponse struct {
	Text  string
	Model string
}
