package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchRecord is one ranked recipient from one match request, kept so
// operators can audit how donations were routed.
type MatchRecord struct {
	ID          uuid.UUID `json:"id"`
	BatchID     uuid.UUID `json:"batch_id"`
	FoodItemID  string    `json:"food_item_id,omitempty"`
	RecipientID string    `json:"recipient_id"`
	Rank        int       `json:"rank"`
	Score       float64   `json:"score"`
	DistanceKm  float64   `json:"distance_km"`
	CreatedAt   time.Time `json:"created_at"`
}

type MatchStats struct {
	TotalBatches int        `json:"total_batches"`
	TotalMatches int        `json:"total_matches"`
	AvgTopScore  float64    `json:"avg_top_score"`
	LastBatchAt  *time.Time `json:"last_batch_at,omitempty"`
}

type Store interface {
	RecordMatches(ctx context.Context, records []*MatchRecord) error
	GetMatchStats(ctx context.Context) (*MatchStats, error)
	Close() error
}
