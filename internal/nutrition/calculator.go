package nutrition

import (
	"math"

	"github.com/fdg312/health-coach/internal/profiles"
)

// activityMultipliers maps activity_level to its TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const defaultActivityMultiplier = 1.55

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

type macroRatios struct {
	protein, fat, carbs float64
}

var (
	defaultRatios    = macroRatios{protein: 0.30, fat: 0.25, carbs: 0.45}
	weightLossRatios = macroRatios{protein: 0.40, fat: 0.30, carbs: 0.30}
	muscleGainRatios = macroRatios{protein: 0.35, fat: 0.20, carbs: 0.45}
)

// ActivityMultiplier returns the TDEE multiplier for level, 1.55 when unknown.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// BMR is the Mifflin-St Jeor basal metabolic rate without the sex constant.
func BMR(weightKg, heightCm float64, age int) float64 {
	return 10*weightKg + 6.25*heightCm - 5*float64(age)
}

// Calculate derives daily goals from p. weight_loss takes precedence over
// muscle_gain for both the calorie adjustment and the macro split.
func Calculate(p profiles.Profile) Goals {
	tdee := BMR(p.Weight, p.Height, p.Age) * ActivityMultiplier(p.ActivityLevel)

	calories := tdee
	ratios := defaultRatios
	switch {
	case p.HasGoal(profiles.GoalWeightLoss):
		calories -= 500
		ratios = weightLossRatios
	case p.HasGoal(profiles.GoalMuscleGain):
		calories += 300
		ratios = muscleGainRatios
	}

	return Goals{
		Calories:               round(calories),
		Protein:                round(calories * ratios.protein / kcalPerGramProtein),
		Carbs:                  round(calories * ratios.carbs / kcalPerGramCarbs),
		Fat:                    round(calories * ratios.fat / kcalPerGramFat),
		Fiber:                  round(p.Weight * 0.5),
		Hydration:              math.Round(p.Weight*0.033*10) / 10,
		MealTiming:             mealTiming(),
		MicronutrientFocus:     micronutrientFocus(),
		SupplementsRecommended: Supplements(p.Goals),
	}
}

// Supplements returns the base recommendation plus goal specific entries.
func Supplements(goals []string) []Supplement {
	out := []Supplement{
		{Name: "Multivitamin", Dosage: "1 tablet", Timing: "With breakfast", Purpose: "Fill potential micronutrient gaps"},
	}
	for _, g := range goals {
		if g == profiles.GoalMuscleGain {
			out = append(out,
				Supplement{Name: "Creatine Monohydrate", Dosage: "5g daily", Timing: "Any time", Purpose: "Improve strength and muscle gains"},
				Supplement{Name: "Whey Protein", Dosage: "25-30g", Timing: "Post-workout", Purpose: "Support muscle recovery and growth"},
			)
			break
		}
	}
	return out
}

func mealTiming() map[string]string {
	return map[string]string{
		"breakfast": "15-25% of daily calories",
		"lunch":     "25-35% of daily calories",
		"dinner":    "25-35% of daily calories",
		"snacks":    "15-25% of daily calories",
	}
}

func micronutrientFocus() []string {
	return []string{"Vitamin D", "Omega-3 fatty acids", "Iron", "Calcium", "Magnesium", "Zinc"}
}

// round is half-to-even, so x.5 targets land on the even integer.
func round(v float64) float64 {
	r := math.RoundToEven(v)
	if r <= 0 {
		return 0
	}
	return r
}
