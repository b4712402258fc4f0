package plans

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/fdg312/health-coach/internal/profiles"
	"github.com/fdg312/health-coach/internal/reports"
)

// Handler handles HTTP requests for generated plans.
type Handler struct {
	service *Service
}

// NewHandler creates a new plans handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleMealPlan handles POST /meal-plan
func (h *Handler) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	profile, err := profiles.DecodeProfile(w, r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	plan, err := h.service.GenerateMealPlan(r.Context(), profile)
	if err != nil {
		writeGenerationError(w, err, "Failed to generate meal plan")
		return
	}

	if wantsPDF(r) {
		writePDF(w, "meal-plan.pdf", MealPlanDocument(plan))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// HandleWorkoutPlan handles POST /workout-plan
func (h *Handler) HandleWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	profile, err := profiles.DecodeProfile(w, r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	plan, err := h.service.GenerateWorkoutPlan(r.Context(), profile)
	if err != nil {
		writeGenerationError(w, err, "Failed to generate workout plan")
		return
	}

	if wantsPDF(r) {
		writePDF(w, "workout-plan.pdf", WorkoutPlanDocument(plan))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func wantsPDF(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "application/pdf") {
			return true
		}
	}
	return false
}

func writePDF(w http.ResponseWriter, filename string, doc reports.Document) {
	data, err := reports.RenderPDF(doc)
	if err != nil {
		log.Printf("ERROR plans.export: file=%s err=%v", filename, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeGenerationError never includes model output in the response.
func writeGenerationError(w http.ResponseWriter, err error, message string) {
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Timeout() {
		writeError(w, http.StatusInternalServerError, "generation_timeout", message)
		return
	}
	writeError(w, http.StatusInternalServerError, "generation_failed", message)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *profiles.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "invalid_request", verr.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
