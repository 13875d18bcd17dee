package events

import "time"

type MatchRankedEvent struct {
	BatchID         string    `json:"batch_id"`
	FoodItemID      string    `json:"food_item_id,omitempty"`
	MatchesReturned int       `json:"matches_returned"`
	TotalPotential  int       `json:"total_potential"`
	TopScore        float64   `json:"top_score,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

type SurplusPredictedEvent struct {
	BusinessID       string    `json:"business_id"`
	PredictedSurplus float64   `json:"predicted_surplus"`
	Confidence       float64   `json:"confidence"`
	Timestamp        time.Time `json:"timestamp"`
}

type DemandPredictedEvent struct {
	LocationsProcessed int       `json:"locations_processed"`
	Timestamp          time.Time `json:"timestamp"`
}
