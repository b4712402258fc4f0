package planschema

import (
	"encoding/json"
	"sort"
	"strings"
)

// Weekdays is the required day set, in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func missingKeys(obj map[string]any, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// normalizeDays lower-cases day keys and checks the day set is exactly the
// seven weekdays.
func normalizeDays(field string, raw any) (map[string]any, error) {
	days, ok := raw.(map[string]any)
	if !ok {
		return nil, topLevelError(field, "must be an object keyed by weekday, got %s", kindOf(raw))
	}

	out := make(map[string]any, len(days))
	var unknown []string
	for key, v := range days {
		day := strings.ToLower(strings.TrimSpace(key))
		if !isWeekday(day) {
			unknown = append(unknown, key)
			continue
		}
		if _, dup := out[day]; dup {
			return nil, dayError(day, field, "appears more than once")
		}
		out[day] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, topLevelError(field, "unexpected day(s) %s", strings.Join(unknown, ", "))
	}

	if missing := missingKeys(out, Weekdays); len(missing) > 0 {
		return nil, &SchemaError{Day: missing[0], Index: -1, Field: field, Missing: missing,
			Message: "missing day(s) " + strings.Join(missing, ", ")}
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func isNonNegativeNumber(v any) bool {
	f, ok := toFloat(v)
	return ok && f >= 0
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// isText accepts a non-empty string or a number, as models emit "3x10" and 3
// interchangeably.
func isText(v any) bool {
	if _, ok := nonEmptyString(v); ok {
		return true
	}
	_, ok := toFloat(v)
	return ok
}

func isStringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range list {
		if _, ok := e.(string); !ok {
			return false
		}
	}
	return true
}

// checkOptionalLists verifies that each present key holds a list of strings.
func checkOptionalLists(obj map[string]any, keys ...string) error {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		if !isStringList(v) {
			return topLevelError(k, "must be a list of strings")
		}
	}
	return nil
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
