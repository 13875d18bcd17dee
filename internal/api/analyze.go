package api

import (
	"encoding/json"
	"net/http"

	"github.com/FoodBridge-Labs/Matchwise/internal/analyze"
)

type AnalyzeHandler struct {
	analyzer *analyze.Analyzer
}

func NewAnalyzeHandler(a *analyze.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a}
}

type analyzeRequest struct {
	Description string `json:"description"`
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "description required"})
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.Description)
	requestsTotal.WithLabelValues("analyze", "200").Inc()
	writeJSON(w, http.StatusOK, result)
}
