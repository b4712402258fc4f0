package planschema

import (
	"fmt"
	"strings"
)

// MinMealItemsPerDay is the fewest entries a meal plan day may hold.
const MinMealItemsPerDay = 5

var mealPlanKeys = []string{"meals", "total_calories", "total_protein", "total_carbs", "total_fat", "total_fiber"}

var macroKeys = []string{"calories", "protein", "carbs", "fat", "fiber"}

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// ValidateMealPlan checks the meal plan shape and returns a normalized copy:
// day keys and difficulty values are lower-cased. Content such as whether
// totals add up is not checked.
func ValidateMealPlan(obj map[string]any) (map[string]any, error) {
	if missing := missingKeys(obj, mealPlanKeys); len(missing) > 0 {
		return nil, &SchemaError{Index: -1, Missing: missing, Message: "missing key(s) " + strings.Join(missing, ", ")}
	}

	for _, k := range mealPlanKeys[1:] {
		if !isNonNegativeNumber(obj[k]) {
			return nil, topLevelError(k, "must be a non-negative number")
		}
	}

	if v, ok := obj["hydration"]; ok {
		if _, isString := v.(string); !isString {
			return nil, topLevelError("hydration", "must be a string")
		}
	}
	if err := checkOptionalLists(obj, "meal_timing", "prep_tips", "storage_tips"); err != nil {
		return nil, err
	}

	days, err := normalizeDays("meals", obj["meals"])
	if err != nil {
		return nil, err
	}

	meals := make(map[string]any, len(days))
	for _, day := range Weekdays {
		items, err := validateMealDay(day, days[day])
		if err != nil {
			return nil, err
		}
		meals[day] = items
	}

	out := copyMap(obj)
	out["meals"] = meals
	return out, nil
}

func validateMealDay(day string, raw any) ([]any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, dayError(day, "", "must be a list of meal items, got %s", kindOf(raw))
	}
	if len(list) < MinMealItemsPerDay {
		return nil, dayError(day, "", "has %d meal item(s), need at least %d", len(list), MinMealItemsPerDay)
	}

	out := make([]any, len(list))
	for i, entry := range list {
		item, err := validateMealItem(day, i, entry)
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

func validateMealItem(day string, index int, raw any) (map[string]any, error) {
	item, ok := raw.(map[string]any)
	if !ok {
		return nil, entryError(day, index, "", "must be an object, got %s", kindOf(raw))
	}

	for _, k := range []string{"item", "portion"} {
		v, present := item[k]
		if !present {
			return nil, &SchemaError{Day: day, Index: index, Field: k, Missing: []string{k}, Message: "is required"}
		}
		if _, ok := nonEmptyString(v); !ok {
			return nil, entryError(day, index, k, "must be a non-empty string")
		}
	}

	if v, ok := item["meal"]; ok {
		if _, isString := v.(string); !isString {
			return nil, entryError(day, index, "meal", "must be a string")
		}
	}

	if v, ok := item["nutrients"]; ok {
		if err := validateNutrients(day, index, v); err != nil {
			return nil, err
		}
	}

	if v, ok := item["prep_time"]; ok && !isNonNegativeNumber(v) {
		return nil, entryError(day, index, "prep_time", "must be a non-negative number of minutes")
	}

	if v, ok := item["alternatives"]; ok {
		list, isList := v.([]any)
		if !isList || len(list) == 0 || !isStringList(v) {
			return nil, entryError(day, index, "alternatives", "must be a non-empty list of strings when present")
		}
	}

	v, ok := item["difficulty"]
	if !ok {
		return item, nil
	}
	s, isString := v.(string)
	level := strings.ToLower(strings.TrimSpace(s))
	if !isString || !difficulties[level] {
		return nil, entryError(day, index, "difficulty", "must be one of easy, medium, hard")
	}
	if level == s {
		return item, nil
	}
	out := copyMap(item)
	out["difficulty"] = level
	return out, nil
}

func validateNutrients(day string, index int, raw any) error {
	n, ok := raw.(map[string]any)
	if !ok {
		return entryError(day, index, "nutrients", "must be an object")
	}
	if missing := missingKeys(n, macroKeys); len(missing) > 0 {
		return &SchemaError{Day: day, Index: index, Field: "nutrients", Missing: missing,
			Message: "missing " + strings.Join(missing, ", ")}
	}
	for _, k := range macroKeys {
		if !isNonNegativeNumber(n[k]) {
			return entryError(day, index, fmt.Sprintf("nutrients.%s", k), "must be a non-negative number")
		}
	}
	if v, ok := n["vitamins"]; ok && !isStringList(v) {
		return entryError(day, index, "nutrients.vitamins", "must be a list of strings")
	}
	return nil
}
