package planschema

import (
	"strings"
)

var workoutPlanKeys = []string{"weekly_schedule", "intensity_level", "estimated_calories_burn"}

var intensityAliases = map[string]string{
	"low":      "low",
	"medium":   "medium",
	"moderate": "medium",
	"high":     "high",
}

// RestDay is the single entry a rest day is normalized to.
func RestDay() []any {
	return []any{map[string]any{"exercise": "Rest"}}
}

// ValidateWorkoutPlan checks the workout plan shape and returns a normalized
// copy: day keys are lower-cased, "rest" days become the Rest sentinel and
// intensity_level is mapped onto low, medium or high.
func ValidateWorkoutPlan(obj map[string]any) (map[string]any, error) {
	if missing := missingKeys(obj, workoutPlanKeys); len(missing) > 0 {
		return nil, &SchemaError{Index: -1, Missing: missing, Message: "missing key(s) " + strings.Join(missing, ", ")}
	}

	raw, _ := obj["intensity_level"].(string)
	intensity, ok := intensityAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return nil, topLevelError("intensity_level", "must be one of low, medium, high")
	}

	if !isNonNegativeNumber(obj["estimated_calories_burn"]) {
		return nil, topLevelError("estimated_calories_burn", "must be a non-negative number")
	}

	if err := checkOptionalLists(obj, "warm_up", "cool_down", "safety", "progression"); err != nil {
		return nil, err
	}

	days, err := normalizeDays("weekly_schedule", obj["weekly_schedule"])
	if err != nil {
		return nil, err
	}

	schedule := make(map[string]any, len(days))
	for _, day := range Weekdays {
		exercises, err := validateWorkoutDay(day, days[day])
		if err != nil {
			return nil, err
		}
		schedule[day] = exercises
	}

	out := copyMap(obj)
	out["weekly_schedule"] = schedule
	out["intensity_level"] = intensity
	return out, nil
}

func validateWorkoutDay(day string, raw any) ([]any, error) {
	if s, ok := raw.(string); ok {
		if strings.EqualFold(strings.TrimSpace(s), "rest") {
			return RestDay(), nil
		}
		return nil, dayError(day, "", "must be a list of exercises or \"rest\", got %q", s)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, dayError(day, "", "must be a list of exercises or \"rest\", got %s", kindOf(raw))
	}
	if len(list) == 0 {
		return nil, dayError(day, "", "must not be empty")
	}
	if isRestSentinel(list) {
		return list, nil
	}

	for i, entry := range list {
		if err := validateExercise(day, i, entry); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func isRestSentinel(list []any) bool {
	if len(list) != 1 {
		return false
	}
	entry, ok := list[0].(map[string]any)
	if !ok {
		return false
	}
	name, _ := entry["exercise"].(string)
	return name == "Rest"
}

func validateExercise(day string, index int, raw any) error {
	ex, ok := raw.(map[string]any)
	if !ok {
		return entryError(day, index, "", "must be an object, got %s", kindOf(raw))
	}

	v, present := ex["exercise"]
	if !present {
		return &SchemaError{Day: day, Index: index, Field: "exercise", Missing: []string{"exercise"}, Message: "is required"}
	}
	name, ok := nonEmptyString(v)
	if !ok {
		return entryError(day, index, "exercise", "must be a non-empty string")
	}

	for _, k := range []string{"sets", "duration", "reps", "rest", "notes"} {
		if v, ok := ex[k]; ok && !isText(v) {
			return entryError(day, index, k, "must be a non-empty string or number")
		}
	}

	if strings.EqualFold(strings.TrimSpace(name), "rest") {
		return nil
	}
	_, hasSets := ex["sets"]
	_, hasDuration := ex["duration"]
	if !hasSets && !hasDuration {
		return &SchemaError{Day: day, Index: index, Field: "sets", Missing: []string{"sets", "duration"},
			Message: "needs sets or duration"}
	}
	return nil
}
