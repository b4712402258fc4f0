package nutrition

import (
	"testing"

	"github.com/fdg312/health-coach/internal/profiles"
	"github.com/stretchr/testify/assert"
)

func referenceProfile(activity string, goals ...string) profiles.Profile {
	return profiles.Profile{
		Age:           30,
		Weight:        70,
		Height:        175,
		Goals:         goals,
		ActivityLevel: activity,
	}
}

func TestActivityMultiplierTable(t *testing.T) {
	cases := map[string]float64{
		"sedentary":   1.2,
		"light":       1.375,
		"moderate":    1.55,
		"active":      1.725,
		"very_active": 1.9,
		"couch":       1.55,
		"":            1.55,
		"Moderate":    1.55,
	}
	for level, want := range cases {
		assert.Equal(t, want, ActivityMultiplier(level), "level=%q", level)
	}
}

func TestCalculateReferenceProfile(t *testing.T) {
	g := Calculate(referenceProfile("moderate"))

	assert.Equal(t, 1643.75, BMR(70, 175, 30))
	assert.Equal(t, 2548.0, g.Calories)
	assert.Equal(t, 191.0, g.Protein)
	assert.Equal(t, 287.0, g.Carbs)
	assert.Equal(t, 71.0, g.Fat)
	assert.Equal(t, 35.0, g.Fiber)
	assert.Equal(t, 2.3, g.Hydration)
	assert.Len(t, g.SupplementsRecommended, 1)
	assert.Len(t, g.MicronutrientFocus, 6)
	assert.Contains(t, g.MealTiming, "breakfast")
}

func TestCalculateMuscleGain(t *testing.T) {
	g := Calculate(referenceProfile("moderate", profiles.GoalMuscleGain))

	assert.Equal(t, 2848.0, g.Calories)
	assert.Equal(t, 249.0, g.Protein)
	assert.Equal(t, 320.0, g.Carbs)
	assert.Equal(t, 63.0, g.Fat)
	assert.Len(t, g.SupplementsRecommended, 3)
	assert.Equal(t, "Creatine Monohydrate", g.SupplementsRecommended[1].Name)
	assert.Equal(t, "Whey Protein", g.SupplementsRecommended[2].Name)
}

func TestCalculateWeightLossTakesPrecedence(t *testing.T) {
	both := referenceProfile("moderate", profiles.GoalMuscleGain, profiles.GoalWeightLoss)
	onlyLoss := referenceProfile("moderate", profiles.GoalWeightLoss)

	g := Calculate(both)
	want := Calculate(onlyLoss)

	assert.Equal(t, 2048.0, g.Calories)
	assert.Equal(t, 205.0, g.Protein)
	assert.Equal(t, 154.0, g.Carbs)
	assert.Equal(t, 68.0, g.Fat)
	assert.Equal(t, want.Calories, g.Calories)
	assert.Equal(t, want.Protein, g.Protein)
	assert.Equal(t, want.Fat, g.Fat)
	// supplements still follow muscle_gain membership
	assert.Len(t, g.SupplementsRecommended, 3)
}

func TestCalculateIsPure(t *testing.T) {
	p := referenceProfile("active", profiles.GoalWeightLoss)
	assert.Equal(t, Calculate(p), Calculate(p))
}

func TestCalculateRoundsHalfToEven(t *testing.T) {
	// 1643.75 * 1.2 = 1972.5
	g := Calculate(referenceProfile("sedentary"))
	assert.Equal(t, 1972.0, g.Calories)
}

func TestCalculateUnknownActivityUsesModerate(t *testing.T) {
	assert.Equal(t, Calculate(referenceProfile("moderate")).Calories, Calculate(referenceProfile("unknown")).Calories)
}

func TestCalculateNeverNegative(t *testing.T) {
	g := Calculate(profiles.Profile{Age: 120, Weight: 1, Height: 1, Goals: []string{profiles.GoalWeightLoss}, ActivityLevel: "sedentary"})

	assert.Equal(t, 0.0, g.Calories)
	assert.Equal(t, 0.0, g.Protein)
	assert.Equal(t, 0.0, g.Fat)
}
