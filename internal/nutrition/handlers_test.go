package nutrition

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/health-coach/internal/foodfacts"
)

func TestHandleGoalsReturnsTargets(t *testing.T) {
	h := NewHandler(NewAnalyzer(&fakeLookup{}))

	body := []byte(`{"age":30,"weight":70,"height":175,"goals":["general_health"],"activity_level":"moderate"}`)
	req := httptest.NewRequest(http.MethodPost, "/nutrition-goals", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.HandleGoals(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var goals Goals
	if err := json.NewDecoder(rr.Body).Decode(&goals); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if goals.Calories != 2548 || goals.Protein != 191 || goals.Carbs != 287 || goals.Fat != 71 || goals.Fiber != 35 {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}

func TestHandleGoalsValidationError(t *testing.T) {
	h := NewHandler(NewAnalyzer(&fakeLookup{}))

	body := []byte(`{"age":0,"weight":70,"height":175,"goals":["x"],"activity_level":"moderate"}`)
	req := httptest.NewRequest(http.MethodPost, "/nutrition-goals", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.HandleGoals(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp map[string]map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"]["code"] != "invalid_request" {
		t.Errorf("expected code=invalid_request, got %q", resp["error"]["code"])
	}
	if resp["error"]["message"] != "age must be between 1 and 120" {
		t.Errorf("unexpected message %q", resp["error"]["message"])
	}
}

func TestHandleAnalyzeMeal(t *testing.T) {
	h := NewHandler(NewAnalyzer(&fakeLookup{products: map[string]foodfacts.Product{
		"apple": {Name: "Apple", Nutrients: foodfacts.Nutrients{Calories: 52, Carbs: 14, Fiber: 2.4}},
	}}))

	req := httptest.NewRequest(http.MethodPost, "/analyze-meal", bytes.NewReader([]byte(`{"items":["apple","rock"]}`)))
	rr := httptest.NewRecorder()

	h.HandleAnalyzeMeal(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var analysis MealAnalysis
	if err := json.NewDecoder(rr.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysis.Totals.Calories != 52 {
		t.Errorf("expected 52 kcal, got %v", analysis.Totals.Calories)
	}
	if len(analysis.Unmatched) != 1 || analysis.Unmatched[0] != "rock" {
		t.Errorf("unexpected unmatched: %v", analysis.Unmatched)
	}
}

func TestHandleAnalyzeMealEmptyItems(t *testing.T) {
	h := NewHandler(NewAnalyzer(&fakeLookup{}))

	req := httptest.NewRequest(http.MethodPost, "/analyze-meal", bytes.NewReader([]byte(`{"items":[]}`)))
	rr := httptest.NewRecorder()

	h.HandleAnalyzeMeal(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
