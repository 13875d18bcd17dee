package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FoodBridge-Labs/Matchwise/internal/events"
	"github.com/FoodBridge-Labs/Matchwise/internal/matching"
	"github.com/FoodBridge-Labs/Matchwise/internal/store"
)

type MatchHandler struct {
	ranker *matching.Ranker
	scorer *matching.Scorer
	store  store.Store
	events events.Client
	cfg    Config
	logger *slog.Logger
}

func NewMatchHandler(ranker *matching.Ranker, scorer *matching.Scorer, s store.Store, ev events.Client, cfg Config, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{ranker: ranker, scorer: scorer, store: s, events: ev, cfg: cfg, logger: logger}
}

type rankRequest struct {
	FoodItem   *matching.FoodItem           `json:"food_item"`
	Recipients []*matching.RecipientProfile `json:"recipients"`
	Limit      int                          `json:"limit,omitempty"`
	MinScore   *float64                     `json:"min_score,omitempty"`
}

type rankResponse struct {
	Matches                  []matching.MatchResult `json:"matches"`
	TotalPotentialRecipients int                    `json:"totalPotentialRecipients"`
}

func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("match", "400").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateRankRequest(&req); msg != "" {
		requestsTotal.WithLabelValues("match", "400").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.cfg.DefaultLimit
	}
	minScore := h.cfg.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	matches, total := h.ranker.Rank(req.FoodItem, req.Recipients, limit, minScore)

	matchCandidates.Observe(float64(len(req.Recipients)))
	if len(matches) > 0 {
		matchTopScore.Observe(matches[0].RawScore())
	}

	batchID := uuid.New()
	h.persistMatches(r, batchID, &req, matches)
	h.publishMatches(batchID, &req, matches, total)

	h.logger.Info("match request served",
		"batch_id", batchID,
		"candidates", len(req.Recipients),
		"matches", len(matches),
	)

	requestsTotal.WithLabelValues("match", "200").Inc()
	resp := rankResponse{Matches: matches, TotalPotentialRecipients: total}
	if resp.Matches == nil {
		resp.Matches = []matching.MatchResult{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func validateRankRequest(req *rankRequest) string {
	if req.FoodItem == nil {
		return "food_item required"
	}
	if !req.FoodItem.Location.Valid() {
		return "food_item.location must be a [lng, lat] coordinate pair"
	}
	if req.FoodItem.Quantity <= 0 {
		return "food_item.quantity must be positive"
	}
	if len(req.Recipients) == 0 {
		return "recipients required"
	}
	return ""
}

func (h *MatchHandler) persistMatches(r *http.Request, batchID uuid.UUID, req *rankRequest, matches []matching.MatchResult) {
	if h.store == nil || len(matches) == 0 {
		return
	}
	records := make([]*store.MatchRecord, 0, len(matches))
	for i, m := range matches {
		records = append(records, &store.MatchRecord{
			BatchID:     batchID,
			FoodItemID:  req.FoodItem.ID,
			RecipientID: m.RecipientID,
			Rank:        i + 1,
			Score:       m.OverallScore,
			DistanceKm:  m.DistanceKm,
		})
	}
	// History is best-effort: a storage hiccup must not fail the match.
	if err := h.store.RecordMatches(r.Context(), records); err != nil {
		h.logger.Warn("failed to record match history", "batch_id", batchID, "error", err)
	}
}

func (h *MatchHandler) publishMatches(batchID uuid.UUID, req *rankRequest, matches []matching.MatchResult, total int) {
	if h.events == nil {
		return
	}
	event := events.MatchRankedEvent{
		BatchID:         batchID.String(),
		FoodItemID:      req.FoodItem.ID,
		MatchesReturned: len(matches),
		TotalPotential:  total,
		Timestamp:       time.Now().UTC(),
	}
	if len(matches) > 0 {
		event.TopScore = matches[0].OverallScore
	}
	_ = h.events.Publish(events.SubjectMatchRanked(batchID.String()), event)
}

type explainRequest struct {
	FoodItem  *matching.FoodItem         `json:"food_item"`
	Recipient *matching.RecipientProfile `json:"recipient"`
}

type explainResponse struct {
	RecipientID  string                  `json:"recipientId"`
	OverallScore float64                 `json:"overallScore"`
	Factors      []matching.FactorResult `json:"factors"`
}

// Explain scores a single pair and returns the weighted factor
// breakdown instead of a ranked list.
func (h *MatchHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.FoodItem == nil || !req.FoodItem.Location.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "food_item with location required"})
		return
	}
	if req.Recipient == nil || !req.Recipient.Location.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "recipient with location required"})
		return
	}

	now := time.Now().UTC()
	result := h.scorer.Score(req.FoodItem, req.Recipient, now)
	factors := h.scorer.Breakdown(req.FoodItem, req.Recipient, now)

	requestsTotal.WithLabelValues("explain", "200").Inc()
	writeJSON(w, http.StatusOK, explainResponse{
		RecipientID:  req.Recipient.ID,
		OverallScore: result.OverallScore,
		Factors:      factors,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
