package planschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Extract returns the span from the first '{' to the last '}' in text.
// Model output often wraps the object in prose or code fences.
func Extract(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", &ParseError{Stage: "extract", Err: ErrNoObject}
	}
	return text[start : end+1], nil
}

// DecodeObject strictly decodes a single JSON object. Numbers are kept as
// json.Number so a round trip does not change their text.
func DecodeObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Stage: "decode", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Stage: "decode", Err: errors.New("unexpected data after JSON object")}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Stage: "decode", Err: fmt.Errorf("expected JSON object, got %s", kindOf(v))}
	}
	return obj, nil
}

func parse(raw string) (map[string]any, error) {
	candidate, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	return DecodeObject(candidate)
}

// ParseMealPlan runs extraction, decoding and meal plan validation.
func ParseMealPlan(raw string) (map[string]any, error) {
	obj, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return ValidateMealPlan(obj)
}

// ParseWorkoutPlan runs extraction, decoding and workout plan validation.
func ParseWorkoutPlan(raw string) (map[string]any, error) {
	obj, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return ValidateWorkoutPlan(obj)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, int:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
