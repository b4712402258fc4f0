package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8000"
)

var (
	apiBase string
	client  = &http.Client{Timeout: 90 * time.Second}
)

// smokeProfile is a valid profile accepted by every profile endpoint.
var smokeProfile = map[string]any{
	"age":                  30,
	"weight":               70,
	"height":               175,
	"goals":                []string{"weight_loss"},
	"dietary_restrictions": []string{"vegetarian"},
	"activity_level":       "moderate",
	"meal_preferences":     []string{"mediterranean"},
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func main() {
	fmt.Println("=== Health & Nutrition Coach Smoke Test ===")
	fmt.Println()

	apiBase = strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBase), "/")
	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Root", testRoot},
		{"Nutrition Goals", testNutritionGoals},
		{"Invalid Profile", testInvalidProfile},
		{"Analyze Meal", testAnalyzeMeal},
		{"Meal Plan (JSON)", testMealPlan},
		{"Meal Plan (PDF)", testMealPlanPDF},
		{"Workout Plan", testWorkoutPlan},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		start := time.Now()
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK (%s)\n", time.Since(start).Round(time.Millisecond))
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testRoot() error {
	var resp map[string]string
	if err := getJSON("/", &resp); err != nil {
		return err
	}
	if resp["status"] != "ok" {
		return fmt.Errorf("expected status=ok, got %q", resp["status"])
	}
	return nil
}

func testNutritionGoals() error {
	var goals map[string]any
	status, err := postJSON("/nutrition-goals", smokeProfile, "", &goals)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status=%d", status)
	}
	if calories, _ := goals["calories"].(float64); calories != 2048 {
		return fmt.Errorf("expected 2048 calories, got %v", goals["calories"])
	}
	return nil
}

func testInvalidProfile() error {
	var body map[string]map[string]string
	status, err := postJSON("/nutrition-goals", map[string]any{"age": 0}, "", &body)
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("expected 400, got %d", status)
	}
	if body["error"]["code"] == "" {
		return fmt.Errorf("missing error code in %v", body)
	}
	return nil
}

func testAnalyzeMeal() error {
	var analysis struct {
		Items     []map[string]any `json:"items"`
		Unmatched []string         `json:"unmatched"`
	}
	status, err := postJSON("/analyze-meal", map[string]any{"items": []string{"banana", "oatmeal"}}, "", &analysis)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status=%d", status)
	}
	if len(analysis.Items) != 2 {
		return fmt.Errorf("expected 2 items, got %d", len(analysis.Items))
	}
	return nil
}

func testMealPlan() error {
	var plan struct {
		Meals map[string][]json.RawMessage `json:"meals"`
	}
	status, err := postJSON("/meal-plan", smokeProfile, "", &plan)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status=%d", status)
	}
	for _, day := range weekdays {
		if len(plan.Meals[day]) < 5 {
			return fmt.Errorf("meal plan %s has %d items", day, len(plan.Meals[day]))
		}
	}
	return nil
}

func testMealPlanPDF() error {
	status, body, contentType, err := post("/meal-plan", smokeProfile, "application/pdf")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status=%d body=%s", status, truncate(body))
	}
	if !strings.HasPrefix(contentType, "application/pdf") {
		return fmt.Errorf("expected application/pdf, got %q", contentType)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		return fmt.Errorf("response is not a PDF document")
	}
	return nil
}

func testWorkoutPlan() error {
	var plan struct {
		WeeklySchedule map[string][]json.RawMessage `json:"weekly_schedule"`
	}
	status, err := postJSON("/workout-plan", smokeProfile, "", &plan)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("status=%d", status)
	}
	for _, day := range weekdays {
		if len(plan.WeeklySchedule[day]) == 0 {
			return fmt.Errorf("workout plan missing %s", day)
		}
	}
	return nil
}

// Helper functions

func getJSON(path string, out any) error {
	resp, err := client.Get(apiBase + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, truncate(body))
	}
	return json.Unmarshal(body, out)
}

func postJSON(path string, payload any, accept string, out any) (int, error) {
	status, body, _, err := post(path, payload, accept)
	if err != nil {
		return 0, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return status, fmt.Errorf("decode response (status=%d): %w body=%s", status, err, truncate(body))
	}
	return status, nil
}

func post(path string, payload any, accept string) (int, []byte, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, "", err
	}

	req, err := http.NewRequest(http.MethodPost, apiBase+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return 0, nil, "", err
	}
	return resp.StatusCode, body, resp.Header.Get("Content-Type"), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func truncate(b []byte) string {
	if len(b) > 512 {
		return string(b[:512]) + "..."
	}
	return string(b)
}
