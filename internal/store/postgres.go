package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordMatches(ctx context.Context, records []*MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			INSERT INTO match_history (batch_id, food_item_id, recipient_id, rank, score, distance_km)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.BatchID, rec.FoodItemID, rec.RecipientID, rec.Rank, rec.Score, rec.DistanceKm,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert match record: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) GetMatchStats(ctx context.Context) (*MatchStats, error) {
	stats := &MatchStats{}
	var avgTopScore *float64
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(DISTINCT batch_id),
			COUNT(*),
			AVG(score) FILTER (WHERE rank = 1),
			MAX(created_at)
		FROM match_history`,
	).Scan(&stats.TotalBatches, &stats.TotalMatches, &avgTopScore, &stats.LastBatchAt)
	if err != nil {
		return nil, err
	}
	if avgTopScore != nil {
		stats.AvgTopScore = *avgTopScore
	}
	return stats, nil
}
