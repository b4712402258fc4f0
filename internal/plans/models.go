package plans

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Nutrients as reported by the model for one meal item.
type Nutrients struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    float64  `json:"fiber"`
	Vitamins []string `json:"vitamins,omitzero"`
}

type MealItem struct {
	Item         string     `json:"item"`
	Portion      string     `json:"portion"`
	Meal         string     `json:"meal,omitzero"`
	Nutrients    *Nutrients `json:"nutrients,omitzero"`
	PrepTime     *float64   `json:"prep_time,omitzero"`
	Difficulty   string     `json:"difficulty,omitzero"`
	Alternatives []string   `json:"alternatives,omitzero"`
	// DatabaseNutrients holds per-100g values from the food database. It is
	// an empty object when enrichment ran but the lookup failed.
	DatabaseNutrients map[string]float64 `json:"database_nutrients,omitzero"`
}

type MealPlan struct {
	Meals         map[string][]MealItem `json:"meals"`
	TotalCalories float64               `json:"total_calories"`
	TotalProtein  float64               `json:"total_protein"`
	TotalCarbs    float64               `json:"total_carbs"`
	TotalFat      float64               `json:"total_fat"`
	TotalFiber    float64               `json:"total_fiber"`
	MealTiming    []string              `json:"meal_timing,omitzero"`
	Hydration     *string               `json:"hydration,omitzero"`
	PrepTips      []string              `json:"prep_tips,omitzero"`
	StorageTips   []string              `json:"storage_tips,omitzero"`
}

// FlexString accepts a JSON string or number. Models write "sets": 3 and
// "sets": "3x10" interchangeably.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

type Exercise struct {
	Exercise string     `json:"exercise"`
	Sets     FlexString `json:"sets,omitzero"`
	Reps     FlexString `json:"reps,omitzero"`
	Duration FlexString `json:"duration,omitzero"`
	Rest     FlexString `json:"rest,omitzero"`
	Notes    FlexString `json:"notes,omitzero"`
}

type WorkoutPlan struct {
	WeeklySchedule        map[string][]Exercise `json:"weekly_schedule"`
	IntensityLevel        string                `json:"intensity_level"`
	EstimatedCaloriesBurn float64               `json:"estimated_calories_burn"`
	WarmUp                []string              `json:"warm_up,omitzero"`
	CoolDown              []string              `json:"cool_down,omitzero"`
	Safety                []string              `json:"safety,omitzero"`
	Progression           []string              `json:"progression,omitzero"`
}

// decodeValidated maps a validated object onto a typed plan.
func decodeValidated(obj map[string]any, dst any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode validated plan: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode validated plan: %w", err)
	}
	return nil
}
