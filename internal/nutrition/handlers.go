package nutrition

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fdg312/health-coach/internal/profiles"
)

// Handler handles HTTP requests for nutrition goals and meal analysis.
type Handler struct {
	analyzer *Analyzer
}

// NewHandler creates a new nutrition handler.
func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// HandleGoals handles POST /nutrition-goals
func (h *Handler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	profile, err := profiles.DecodeProfile(w, r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Calculate(profile))
}

// HandleAnalyzeMeal handles POST /analyze-meal
func (h *Handler) HandleAnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeMealRequest
	if err := profiles.DecodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		var verr *profiles.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "invalid_request", verr.Error())
			return
		}
		log.Printf("ERROR nutrition.analyze: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to analyze meal")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
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
