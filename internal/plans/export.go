package plans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fdg312/health-coach/internal/planschema"
	"github.com/fdg312/health-coach/internal/reports"
)

// MealPlanDocument lays a meal plan out for PDF rendering.
func MealPlanDocument(plan MealPlan) reports.Document {
	doc := reports.Document{
		Title: "Weekly Meal Plan",
		Subtitle: fmt.Sprintf("Daily totals: %s kcal, protein %s g, carbs %s g, fat %s g, fiber %s g",
			num(plan.TotalCalories), num(plan.TotalProtein), num(plan.TotalCarbs), num(plan.TotalFat), num(plan.TotalFiber)),
	}

	for _, day := range planschema.Weekdays {
		table := &reports.Table{
			Header: []string{"Meal", "Item", "Portion", "kcal"},
			Widths: []float64{25, 75, 62, 18},
		}
		for _, item := range plan.Meals[day] {
			kcal := ""
			if item.Nutrients != nil {
				kcal = num(item.Nutrients.Calories)
			}
			table.Rows = append(table.Rows, []string{item.Meal, item.Item, item.Portion, kcal})
		}
		doc.Sections = append(doc.Sections, reports.Section{Heading: title(day), Table: table})
	}

	var guidance []string
	if plan.Hydration != nil {
		guidance = append(guidance, "Hydration: "+*plan.Hydration)
	}
	guidance = appendList(guidance, "Meal timing", plan.MealTiming)
	guidance = appendList(guidance, "Prep tip", plan.PrepTips)
	guidance = appendList(guidance, "Storage", plan.StorageTips)
	if len(guidance) > 0 {
		doc.Sections = append(doc.Sections, reports.Section{Heading: "Guidance", Lines: guidance})
	}
	return doc
}

// WorkoutPlanDocument lays a workout plan out for PDF rendering.
func WorkoutPlanDocument(plan WorkoutPlan) reports.Document {
	doc := reports.Document{
		Title:    "Weekly Workout Plan",
		Subtitle: fmt.Sprintf("Intensity: %s. Estimated burn: %s kcal", plan.IntensityLevel, num(plan.EstimatedCaloriesBurn)),
	}

	var warm []string
	warm = appendList(warm, "Warm-up", plan.WarmUp)
	warm = appendList(warm, "Cool-down", plan.CoolDown)
	if len(warm) > 0 {
		doc.Sections = append(doc.Sections, reports.Section{Heading: "Routine", Lines: warm})
	}

	for _, day := range planschema.Weekdays {
		table := &reports.Table{
			Header: []string{"Exercise", "Sets", "Reps", "Duration", "Rest"},
			Widths: []float64{70, 22, 22, 40, 26},
		}
		for _, ex := range plan.WeeklySchedule[day] {
			table.Rows = append(table.Rows, []string{ex.Exercise, string(ex.Sets), string(ex.Reps), string(ex.Duration), string(ex.Rest)})
		}
		doc.Sections = append(doc.Sections, reports.Section{Heading: title(day), Table: table})
	}

	var notes []string
	notes = appendList(notes, "Safety", plan.Safety)
	notes = appendList(notes, "Progression", plan.Progression)
	if len(notes) > 0 {
		doc.Sections = append(doc.Sections, reports.Section{Heading: "Notes", Lines: notes})
	}
	return doc
}

func appendList(lines []string, label string, values []string) []string {
	for _, v := range values {
		lines = append(lines, label+": "+v)
	}
	return lines
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func title(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
