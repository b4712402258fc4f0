package profiles

import (
	"fmt"
	"strings"
)

const (
	GoalWeightLoss = "weight_loss"
	GoalMuscleGain = "muscle_gain"
)

// ActivityLevels lists the accepted activity_level values, least active first.
var ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}

// Profile is the biometric and preference input shared by every endpoint.
type Profile struct {
	Age                 int      `json:"age"`
	Weight              float64  `json:"weight"`
	Height              float64  `json:"height"`
	Goals               []string `json:"goals"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	ActivityLevel       string   `json:"activity_level"`
	MealPreferences     []string `json:"meal_preferences,omitempty"`
}

// ValidationError reports a profile field that failed boundary validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Normalize trims list entries and lower-cases the activity level.
func (p Profile) Normalize() Profile {
	p.ActivityLevel = strings.ToLower(strings.TrimSpace(p.ActivityLevel))
	p.Goals = trimAll(p.Goals)
	p.DietaryRestrictions = trimAll(p.DietaryRestrictions)
	p.MealPreferences = trimAll(p.MealPreferences)
	return p
}

// Validate checks ranges and required fields. It expects a normalized profile.
func (p Profile) Validate() error {
	if p.Age < 1 || p.Age > 120 {
		return invalid("age", "must be between 1 and 120")
	}
	if p.Weight <= 0 || p.Weight > 500 {
		return invalid("weight", "must be greater than 0 and at most 500 kg")
	}
	if p.Height <= 0 || p.Height > 300 {
		return invalid("height", "must be greater than 0 and at most 300 cm")
	}
	if len(p.Goals) == 0 {
		return invalid("goals", "must contain at least one item")
	}
	for _, goal := range p.Goals {
		if goal == "" {
			return invalid("goals", "must not contain empty values")
		}
	}
	if p.ActivityLevel == "" {
		return invalid("activity_level", "is required")
	}
	if !IsActivityLevel(p.ActivityLevel) {
		return invalid("activity_level", "must be one of %s", strings.Join(ActivityLevels, ", "))
	}
	return nil
}

// HasGoal reports whether goal is present in the profile goals.
func (p Profile) HasGoal(goal string) bool {
	for _, g := range p.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

func IsActivityLevel(level string) bool {
	for _, l := range ActivityLevels {
		if l == level {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
