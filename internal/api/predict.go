package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/FoodBridge-Labs/Matchwise/internal/events"
	"github.com/FoodBridge-Labs/Matchwise/internal/predict"
)

type PredictHandler struct {
	predictor *predict.SurplusPredictor
	events    events.Client
	logger    *slog.Logger
}

func NewPredictHandler(p *predict.SurplusPredictor, ev events.Client, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{predictor: p, events: ev, logger: logger}
}

func (h *PredictHandler) Surplus(w http.ResponseWriter, r *http.Request) {
	var req predict.SurplusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.BusinessID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "businessId required"})
		return
	}

	prediction := h.predictor.Predict(r.Context(), &req)

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSurplusPredicted(req.BusinessID), events.SurplusPredictedEvent{
			BusinessID:       req.BusinessID,
			PredictedSurplus: prediction.PredictedSurplus,
			Confidence:       prediction.Confidence,
			Timestamp:        time.Now().UTC(),
		})
	}

	requestsTotal.WithLabelValues("predict_surplus", "200").Inc()
	writeJSON(w, http.StatusOK, prediction)
}

type batchDemandRequest struct {
	Locations []*predict.AreaLocation `json:"locations"`
}

type batchDemandResponse struct {
	Predictions    []*predict.DemandPrediction `json:"predictions"`
	TotalProcessed int                         `json:"totalProcessed"`
}

func (h *PredictHandler) BatchDemand(w http.ResponseWriter, r *http.Request) {
	var req batchDemandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	predictions := predict.PredictDemandBatch(req.Locations)

	if h.events != nil && len(predictions) > 0 {
		_ = h.events.Publish(events.SubjectDemandPredicted(), events.DemandPredictedEvent{
			LocationsProcessed: len(predictions),
			Timestamp:          time.Now().UTC(),
		})
	}

	requestsTotal.WithLabelValues("predict_demand", "200").Inc()
	writeJSON(w, http.StatusOK, batchDemandResponse{
		Predictions:    predictions,
		TotalProcessed: len(predictions),
	})
}
