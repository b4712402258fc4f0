package plans

import (
	"fmt"
	"strings"

	"github.com/fdg312/health-coach/internal/planschema"
	"github.com/fdg312/health-coach/internal/profiles"
)

const mealPlanSystemPrompt = "You are an expert nutritionist and meal planner with deep knowledge of sports nutrition, " +
	"dietary science and meal timing. Provide evidence-based recommendations that are practical and easy to follow. " +
	"Respond with a single JSON object and nothing else."

const workoutPlanSystemPrompt = "You are an expert personal trainer and exercise physiologist with deep knowledge of " +
	"biomechanics, exercise science and progressive programming. Provide evidence-based recommendations that " +
	"prioritize both results and safety. Respond with a single JSON object and nothing else."

const mealPlanSchema = `{
  "meals": {
    "monday": [
      {
        "meal": "breakfast",
        "item": "Oatmeal with berries",
        "portion": "80g oats, 100g berries",
        "nutrients": {"calories": 380, "protein": 12, "carbs": 62, "fat": 7, "fiber": 9, "vitamins": ["B1", "Manganese"]},
        "prep_time": 10,
        "difficulty": "easy",
        "alternatives": ["Greek yogurt with granola"]
      }
    ],
    "tuesday": [], "wednesday": [], "thursday": [], "friday": [], "saturday": [], "sunday": []
  },
  "total_calories": 2100,
  "total_protein": 150,
  "total_carbs": 220,
  "total_fat": 70,
  "total_fiber": 35,
  "meal_timing": ["..."],
  "hydration": "...",
  "prep_tips": ["..."],
  "storage_tips": ["..."]
}`

const workoutPlanSchema = `{
  "weekly_schedule": {
    "monday": [
      {"exercise": "Squats", "sets": "3", "reps": "10", "rest": "90s", "notes": "Keep the chest up"},
      {"exercise": "Running", "duration": "30 minutes"}
    ],
    "tuesday": "rest",
    "wednesday": [], "thursday": [], "friday": [], "saturday": [], "sunday": []
  },
  "intensity_level": "low | medium | high",
  "estimated_calories_burn": 1800,
  "warm_up": ["..."],
  "cool_down": ["..."],
  "safety": ["..."],
  "progression": ["..."]
}`

func mealPlanPrompt(p profiles.Profile) string {
	var b strings.Builder
	b.WriteString("Create a detailed, nutritionally balanced 7-day meal plan for someone with the following profile:\n")
	writeProfile(&b, p, true)
	b.WriteString("\nReturn JSON with exactly this structure:\n")
	b.WriteString(mealPlanSchema)
	b.WriteString("\n\nRequirements:\n")
	fmt.Fprintf(&b, "1. Include every day: %s. No other keys under \"meals\".\n", strings.Join(planschema.Weekdays, ", "))
	fmt.Fprintf(&b, "2. Each day must list at least %d meal items covering breakfast, lunch, dinner and snacks.\n", planschema.MinMealItemsPerDay)
	b.WriteString("3. Every item needs \"item\" and \"portion\" with exact portions in grams.\n")
	b.WriteString("4. When \"nutrients\" is given it must contain calories, protein, carbs, fat and fiber as numbers.\n")
	b.WriteString("5. \"difficulty\" is one of easy, medium, hard. \"prep_time\" is in minutes.\n")
	b.WriteString("6. \"alternatives\", when present, lists at least one option.\n")
	b.WriteString("7. Totals are daily averages in kcal and grams.\n")
	b.WriteString("8. Respect every dietary restriction and consider meal timing around the activity level and goals.\n")
	return b.String()
}

func workoutPlanPrompt(p profiles.Profile) string {
	var b strings.Builder
	b.WriteString("Create a detailed, progressive 7-day workout plan for someone with the following profile:\n")
	writeProfile(&b, p, false)
	b.WriteString("\nReturn JSON with exactly this structure:\n")
	b.WriteString(workoutPlanSchema)
	b.WriteString("\n\nRequirements:\n")
	fmt.Fprintf(&b, "1. Include every day: %s.\n", strings.Join(planschema.Weekdays, ", "))
	b.WriteString("2. A rest day is the string \"rest\".\n")
	b.WriteString("3. Every exercise needs a non-empty \"exercise\" name and \"sets\" or \"duration\".\n")
	b.WriteString("4. \"intensity_level\" is one of low, medium, high.\n")
	b.WriteString("5. \"estimated_calories_burn\" is the weekly total in kcal.\n")
	b.WriteString("6. Include both cardio and strength training, with warm-up, cool-down, safety and progression advice.\n")
	return b.String()
}

func writeProfile(b *strings.Builder, p profiles.Profile, withFood bool) {
	fmt.Fprintf(b, "Age: %d years\n", p.Age)
	fmt.Fprintf(b, "Weight: %g kg\n", p.Weight)
	fmt.Fprintf(b, "Height: %g cm\n", p.Height)
	fmt.Fprintf(b, "Goals: %s\n", joinOrNone(p.Goals))
	fmt.Fprintf(b, "Activity Level: %s\n", p.ActivityLevel)
	fmt.Fprintf(b, "Dietary Restrictions: %s\n", joinOrNone(p.DietaryRestrictions))
	if withFood {
		fmt.Fprintf(b, "Meal Preferences: %s\n", joinOrNone(p.MealPreferences))
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
