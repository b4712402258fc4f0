package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

const mockModel = "mock"

var mockWeekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// MockProvider returns canned but schema-complete plans so the API can run
// without a model key.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return GenerateResponse{}, err
	}

	var payload map[string]any
	switch req.Kind {
	case KindMealPlan:
		payload = mockMealPlan()
	case KindWorkoutPlan:
		payload = mockWorkoutPlan()
	default:
		return GenerateResponse{}, fmt.Errorf("mock provider: unsupported kind %q", req.Kind)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return GenerateResponse{}, err
	}
	return GenerateResponse{
		Text:  "Here is your plan (demo mode):\n" + string(body),
		Model: mockModel,
	}, nil
}

type mockMeal struct {
	slot, item, portion           string
	calories, protein, carbs, fat float64
	fiber                         float64
	prepTime                      int
	difficulty                    string
	alternative                   string
}

var mockMeals = []mockMeal{
	{"breakfast", "Oatmeal with berries", "80g oats, 100g berries", 380, 12, 62, 7, 9, 10, "easy", "Greek yogurt with granola"},
	{"snack", "Apple with almond butter", "1 apple, 20g almond butter", 220, 5, 26, 11, 5, 3, "easy", "Pear with walnuts"},
	{"lunch", "Grilled chicken quinoa bowl", "150g chicken, 90g quinoa, 100g vegetables", 560, 45, 55, 14, 8, 25, "medium", "Tofu quinoa bowl"},
	{"snack", "Cottage cheese with cucumber", "150g cottage cheese, 100g cucumber", 180, 20, 8, 6, 1, 5, "easy", "Hummus with carrots"},
	{"dinner", "Baked salmon with sweet potato", "150g salmon, 200g sweet potato, 80g broccoli", 620, 38, 52, 24, 9, 35, "medium", "Baked cod with brown rice"},
}

func mockMealPlan() map[string]any {
	meals := make(map[string]any, len(mockWeekdays))
	var calories, protein, carbs, fat, fiber float64
	for _, m := range mockMeals {
		calories += m.calories
		protein += m.protein
		carbs += m.carbs
		fat += m.fat
		fiber += m.fiber
	}

	for _, day := range mockWeekdays {
		items := make([]map[string]any, 0, len(mockMeals))
		for _, m := range mockMeals {
			items = append(items, map[string]any{
				"meal":    m.slot,
				"item":    m.item,
				"portion": m.portion,
				"nutrients": map[string]any{
					"calories": m.calories,
					"protein":  m.protein,
					"carbs":    m.carbs,
					"fat":      m.fat,
					"fiber":    m.fiber,
				},
				"prep_time":    m.prepTime,
				"difficulty":   m.difficulty,
				"alternatives": []string{m.alternative},
			})
		}
		meals[day] = items
	}

	return map[string]any{
		"meals":          meals,
		"total_calories": calories,
		"total_protein":  protein,
		"total_carbs":    carbs,
		"total_fat":      fat,
		"total_fiber":    fiber,
		"meal_timing":    []string{"Breakfast within an hour of waking", "Eat every 3-4 hours"},
		"hydration":      "Drink 2-3 litres of water across the day",
		"prep_tips":      []string{"Batch cook quinoa and chicken on Sunday"},
		"storage_tips":   []string{"Keep cooked meals refrigerated for up to 3 days"},
	}
}

func mockWorkoutPlan() map[string]any {
	strength := []map[string]any{
		{"exercise": "Squats", "sets": "3", "reps": "10", "rest": "90s"},
		{"exercise": "Push-ups", "sets": "3", "reps": "12", "rest": "60s"},
		{"exercise": "Plank", "sets": "3", "duration": "45 seconds", "rest": "45s"},
	}
	cardio := []map[string]any{
		{"exercise": "Brisk walk or easy run", "duration": "30 minutes", "notes": "Keep a conversational pace"},
		{"exercise": "Mobility flow", "duration": "10 minutes"},
	}

	return map[string]any{
		"weekly_schedule": map[string]any{
			"monday":    strength,
			"tuesday":   cardio,
			"wednesday": strength,
			"thursday":  "rest",
			"friday":    strength,
			"saturday":  cardio,
			"sunday":    "rest",
		},
		"intensity_level":         "Moderate",
		"estimated_calories_burn": 1800,
		"warm_up":                 []string{"5 minutes light cardio", "Dynamic leg swings"},
		"cool_down":               []string{"5 minutes walking", "Static stretching"},
		"safety":                  []string{"Stop if you feel sharp pain"},
		"progression":             []string{"Add one set per exercise every two weeks"},
	}
}
